package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ADVERTISER_BASE_URL", "ADVERTISER_IDS", "CONNECT_TIMEOUT", "MAX_WORKERS",
		"LOG_LEVEL", "DATABASE_URL", "LISTEN_ADDR", "REFRESH_EVERY",
		"SHUTDOWN_WAIT", "MAX_CPU",
	} {
		_ = os.Unsetenv(k)
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADVERTISER_BASE_URL", "http://stats.example.com/code_test.php?advertiser_id=")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ConnectTimeout != 200*time.Millisecond {
		t.Fatalf("default CONNECT_TIMEOUT expected 200ms, got %v", cfg.ConnectTimeout)
	}
	if cfg.MaxWorkers != 8 {
		t.Fatalf("default MAX_WORKERS expected 8, got %d", cfg.MaxWorkers)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("default LOG_LEVEL expected info, got %q", cfg.LogLevel)
	}
	if cfg.RefreshEvery != time.Minute {
		t.Fatalf("default REFRESH_EVERY expected 1m, got %v", cfg.RefreshEvery)
	}
	if cfg.ShutdownWait != 5*time.Second {
		t.Fatalf("default SHUTDOWN_WAIT expected 5s, got %v", cfg.ShutdownWait)
	}
	if len(cfg.AdvertiserIDs) != 0 {
		t.Fatalf("expected no default ids, got %v", cfg.AdvertiserIDs)
	}
}

func TestParse_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADVERTISER_BASE_URL", "http://stats.example.com/?advertiser_id=")
	t.Setenv("ADVERTISER_IDS", "123, 124,456,457,726")
	t.Setenv("CONNECT_TIMEOUT", "500ms")
	t.Setenv("MAX_WORKERS", "16")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("REFRESH_EVERY", "30s")
	t.Setenv("SHUTDOWN_WAIT", "2s")
	t.Setenv("MAX_CPU", "4")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg.AdvertiserIDs, []int64{123, 124, 456, 457, 726}) {
		t.Fatalf("ids not parsed: %v", cfg.AdvertiserIDs)
	}
	if cfg.ConnectTimeout != 500*time.Millisecond || cfg.MaxWorkers != 16 {
		t.Fatalf("custom timeout/workers not applied: %+v", cfg)
	}
	if cfg.ListenAddr != ":8080" || cfg.RefreshEvery != 30*time.Second {
		t.Fatalf("custom serve settings not applied: %+v", cfg)
	}
	if cfg.ShutdownWait != 2*time.Second || cfg.MaxCPU != 4 || cfg.LogLevel != "debug" {
		t.Fatalf("custom envs not applied: %+v", cfg)
	}
}

func TestParse_WorkerFloor(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADVERTISER_BASE_URL", "http://stats.example.com/?advertiser_id=")
	t.Setenv("MAX_WORKERS", "1")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxWorkers != 2 {
		t.Fatalf("expected floor of 2 workers, got %d", cfg.MaxWorkers)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name:    "missing ADVERTISER_BASE_URL",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "bad ADVERTISER_IDS",
			env: map[string]string{
				"ADVERTISER_BASE_URL": "http://stats.example.com/?advertiser_id=",
				"ADVERTISER_IDS":      "123,abc",
			},
			wantErr: true,
		},
		{
			name: "ok minimal",
			env: map[string]string{
				"ADVERTISER_BASE_URL": "http://stats.example.com/?advertiser_id=",
			},
			wantErr: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Parse()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs(" 1, 2,3 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Fatalf("unexpected ids: %v", ids)
	}

	if ids, err := ParseIDs(""); err != nil || ids != nil {
		t.Fatalf("empty input should yield nil ids, got %v, %v", ids, err)
	}

	if _, err := ParseIDs("1,,2"); err == nil {
		t.Fatalf("expected error on empty element")
	}
}
