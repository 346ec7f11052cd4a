package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/adlift/ad-aggregator/internal/adapter/fetch/httpfetch"
	"github.com/adlift/ad-aggregator/internal/adapter/sink/console"
	"github.com/adlift/ad-aggregator/internal/adapter/sink/postgres"
	http_server "github.com/adlift/ad-aggregator/internal/adapter/transport/http"
	"github.com/adlift/ad-aggregator/internal/service"
	"github.com/adlift/ad-aggregator/pkg/config"
)

type AppInfo struct {
	Name      string
	BuildTime string
	Commit    string
	Release   string
}

type App struct {
	cfg  config.Config
	info *AppInfo
	log  *zap.Logger

	pg        *postgres.Sink // nil, если DATABASE_URL не задан
	collector *service.Collector
	server    *http_server.Server // nil вне режима serve
}

func New(cfg config.Config, info *AppInfo, log *zap.Logger) (*App, error) {
	// 1) Fetcher
	fetcher := httpfetch.New(cfg.BaseURL, cfg.ConnectTimeout)

	// 2) Sinks: консоль всегда, Postgres — по DATABASE_URL
	sinks := []service.Sink{console.New(os.Stdout)}
	var pg *postgres.Sink
	if cfg.DatabaseURL != "" {
		var err error
		pg, err = postgres.New(cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		if err := pg.Init(context.Background()); err != nil {
			return nil, err
		}
		sinks = append(sinks, pg)
	}

	// 3) Collector (worker pool + Aggregator)
	col := service.NewCollector(log, fetcher, cfg.MaxWorkers, sinks...)

	// 4) Report server (режим serve, по LISTEN_ADDR)
	var srv *http_server.Server
	if cfg.ListenAddr != "" {
		srv = http_server.NewServer(log, cfg.ListenAddr)
	}

	return &App{
		cfg:       cfg,
		info:      info,
		log:       log,
		pg:        pg,
		collector: col,
		server:    srv,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	if a.server == nil {
		// Однократный прогон: собрали, опубликовали, вышли
		report := a.collector.Run(ctx, a.cfg.AdvertiserIDs)
		a.log.Info("collection finished",
			zap.Int("advertisers", len(a.cfg.AdvertiserIDs)),
			zap.Int("dates", len(report.Entries)),
		)
		a.close()
		return ErrAppShutdownNormal
	}

	// Режим serve: собираем сразу и дальше по тикеру, отчёт отдаёт сервер
	refresh := func(ctx context.Context) {
		report := a.collector.Run(ctx, a.cfg.AdvertiserIDs)
		a.server.SetReport(report)
	}

	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	refresh(bgCtx)
	go func() {
		t := time.NewTicker(a.cfg.RefreshEvery)
		defer t.Stop()
		for {
			select {
			case <-bgCtx.Done():
				return
			case <-t.C:
				refresh(bgCtx)
			}
		}
	}()

	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- a.server.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		// graceful
		runErr = ErrAppShutdownNormal
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = ErrAppStartup
		} else {
			runErr = ErrAppShutdownNormal
		}
	}

	// Graceful shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.cfg.ShutdownWait)
	defer cancelShutdown()
	_ = a.server.Shutdown(shutdownCtx)
	a.close()

	return runErr
}

func (a *App) close() {
	if a.pg != nil {
		a.pg.Close()
	}
}
