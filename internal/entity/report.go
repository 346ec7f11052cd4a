package entity

import "time"

// AdvertiserRecord — одна строка статистики из ответа эндпоинта.
type AdvertiserRecord struct {
	AdvertiserID int64
	Date         string // YYYY-MM-DD
	Clicks       int64
	Impressions  int64
}

// AggregatedEntry — суммарные клики и показы по одной дате
// по всем рекламодателям сразу.
type AggregatedEntry struct {
	Date        string `json:"ymd"`
	Clicks      int64  `json:"clicks"`
	Impressions int64  `json:"impressions"`
}

type Report struct {
	CollectedAt time.Time         `json:"collected_at"`
	Entries     []AggregatedEntry `json:"entries"`
}
