package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/adlift/ad-aggregator/internal/entity"
)

// Sink persists per-date totals to Postgres. Each run recomputes the full
// totals for its dates, so a publish replaces the stored row rather than
// adding to it.
type Sink struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(dsn string, log *zap.Logger) (*Sink, error) {
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &Sink{pool: pool, log: log}, nil
}

func (s *Sink) Init(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS advertiser_daily_stats (
	ymd          TEXT        NOT NULL,
	clicks       BIGINT      NOT NULL,
	impressions  BIGINT      NOT NULL,
	collected_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (ymd)
);
`
	_, err := s.pool.Exec(ctx, ddl)
	return err
}

// Publish implements service.Sink
func (s *Sink) Publish(ctx context.Context, report entity.Report) error {
	if len(report.Entries) == 0 {
		return nil
	}
	sql := "INSERT INTO advertiser_daily_stats (ymd, clicks, impressions, collected_at) VALUES "
	args := make([]any, 0, len(report.Entries)*4)
	for i, e := range report.Entries {
		if i > 0 {
			sql += ","
		}
		o := i*4 + 1
		sql += fmt.Sprintf("($%d,$%d,$%d,$%d)", o, o+1, o+2, o+3)
		args = append(args, e.Date, e.Clicks, e.Impressions, report.CollectedAt)
	}
	sql += ` ON CONFLICT (ymd) DO UPDATE SET
		clicks = EXCLUDED.clicks,
		impressions = EXCLUDED.impressions,
		collected_at = EXCLUDED.collected_at`
	_, err := s.pool.Exec(ctx, sql, args...)
	return err
}

func (s *Sink) Close() { s.pool.Close() }
