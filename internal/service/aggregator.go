package service

import (
	"sort"

	"github.com/adlift/ad-aggregator/internal/entity"
)

// Aggregate merges records by date, summing clicks and impressions.
// Advertiser identity is dropped at this point: the key is the date alone.
// The result is sorted ascending by date so output is deterministic
// regardless of fetch completion order.
func Aggregate(records []entity.AdvertiserRecord) []entity.AggregatedEntry {
	byDate := make(map[string]*entity.AggregatedEntry, len(records))
	for _, r := range records {
		e, ok := byDate[r.Date]
		if !ok {
			e = &entity.AggregatedEntry{Date: r.Date}
			byDate[r.Date] = e
		}
		e.Clicks += r.Clicks
		e.Impressions += r.Impressions
	}

	out := make([]entity.AggregatedEntry, 0, len(byDate))
	for _, e := range byDate {
		out = append(out, *e)
	}
	// Даты в формате YYYY-MM-DD сортируются лексикографически
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
