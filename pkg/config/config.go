package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	BaseURL        string
	AdvertiserIDs  []int64
	ConnectTimeout time.Duration
	MaxWorkers     int
	LogLevel       string
	DatabaseURL    string
	ListenAddr     string
	RefreshEvery   time.Duration
	ShutdownWait   time.Duration
	MaxCPU         int
}

func Parse() (*Config, error) {
	var errs []error
	c := &Config{}
	c.BaseURL = getenv("ADVERTISER_BASE_URL", "")
	c.ConnectTimeout = mustDuration(getenv("CONNECT_TIMEOUT", "200ms"), 200*time.Millisecond)
	c.MaxWorkers = mustInt(getenv("MAX_WORKERS", "8"))
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.DatabaseURL = getenv("DATABASE_URL", "")
	c.ListenAddr = getenv("LISTEN_ADDR", "")
	c.RefreshEvery = mustDuration(getenv("REFRESH_EVERY", "1m"), time.Minute)
	c.ShutdownWait = mustDuration(getenv("SHUTDOWN_WAIT", "5s"), 5*time.Second)
	c.MaxCPU = mustInt(getenv("MAX_CPU", "0"))

	ids, err := ParseIDs(getenv("ADVERTISER_IDS", ""))
	if err != nil {
		errs = append(errs, fmt.Errorf("ADVERTISER_IDS: %w", err))
	}
	c.AdvertiserIDs = ids

	if c.BaseURL == "" {
		errs = append(errs, fmt.Errorf("ADVERTISER_BASE_URL is required"))
	}
	// Пул не опускается ниже двух воркеров
	if c.MaxWorkers < 2 {
		c.MaxWorkers = 2
	}
	if len(errs) > 0 {
		return nil, joinErrs(errs)
	}
	return c, nil
}

// ParseIDs converts a comma-separated list of advertiser ids.
// An empty string yields no ids, which the collector treats as a no-op.
func ParseIDs(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad advertiser id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func mustInt(s string) int { n, _ := strconv.Atoi(s); return n }
func mustDuration(s string, def time.Duration) time.Duration {
	d, _ := time.ParseDuration(s)
	if d <= 0 {
		return def
	}
	return d
}

func joinErrs(errs []error) error {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Error()
	}
	return fmt.Errorf(msg)
}
