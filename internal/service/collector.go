package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/adlift/ad-aggregator/internal/entity"
)

const (
	DefaultMaxWorkers = 8
	minWorkers        = 2
)

// Collector runs one batch of advertiser fetches under a bounded worker
// pool and publishes the aggregated report to its sinks.
type Collector struct {
	log        *zap.Logger
	fetcher    Fetcher
	sinks      []Sink
	maxWorkers int
}

func NewCollector(log *zap.Logger, fetcher Fetcher, maxWorkers int, sinks ...Sink) *Collector {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	if maxWorkers < minWorkers {
		maxWorkers = minWorkers
	}
	return &Collector{log: log, fetcher: fetcher, sinks: sinks, maxWorkers: maxWorkers}
}

// Run fetches every advertiser concurrently, aggregates the parsed records
// by date and publishes the report to each sink exactly once. A failed
// fetch or an unparsable payload contributes zero records and never aborts
// the batch. An empty id list is a no-op: no fetches, no publish.
func (c *Collector) Run(ctx context.Context, advertiserIDs []int64) entity.Report {
	if len(advertiserIDs) == 0 {
		return entity.Report{CollectedAt: time.Now().UTC()}
	}

	// Буфер на все задачи: ни одна отправка не блокируется и не теряется
	jobs := make(chan int64, len(advertiserIDs))
	results := make(chan []entity.AdvertiserRecord, len(advertiserIDs))

	workers := c.maxWorkers
	if workers > len(advertiserIDs) {
		workers = len(advertiserIDs)
	}
	for i := 0; i < workers; i++ {
		go c.worker(ctx, jobs, results)
	}
	for _, id := range advertiserIDs {
		jobs <- id
	}
	close(jobs)

	// Единственный собирающий цикл: приём N-го результата и есть
	// момент завершения партии, агрегация срабатывает ровно один раз
	var records []entity.AdvertiserRecord
	for i := 0; i < len(advertiserIDs); i++ {
		records = append(records, <-results...)
	}

	report := entity.Report{
		CollectedAt: time.Now().UTC(),
		Entries:     Aggregate(records),
	}
	c.publish(ctx, report)
	return report
}

func (c *Collector) worker(ctx context.Context, jobs <-chan int64, results chan<- []entity.AdvertiserRecord) {
	for id := range jobs {
		body, err := c.fetcher.Fetch(ctx, id)
		if err != nil {
			c.log.Warn("fetch failed", zap.Int64("advertiser_id", id), zap.Error(err))
			results <- nil
			continue
		}
		results <- ParseRecords(c.log.With(zap.Int64("advertiser_id", id)), body)
	}
}

func (c *Collector) publish(ctx context.Context, report entity.Report) {
	for _, s := range c.sinks {
		if err := s.Publish(ctx, report); err != nil {
			c.log.Error("sink publish failed", zap.Error(err))
		}
	}
}
