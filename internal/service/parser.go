package service

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/adlift/ad-aggregator/internal/entity"
)

// rawRecord mirrors one element of the endpoint payload.
// Pointer fields distinguish a missing key from a zero value.
type rawRecord struct {
	AdvertiserID *int64  `json:"advertiser_id"`
	Date         *string `json:"ymd"`
	Clicks       *int64  `json:"num_clicks"`
	Impressions  *int64  `json:"num_impressions"`
}

// ParseRecords converts a raw endpoint payload into typed records.
// The payload must be a JSON array of objects; malformed elements are
// logged and skipped, the rest of the array is still processed.
// A body that is not a JSON array yields no records at all.
func ParseRecords(log *zap.Logger, body []byte) []entity.AdvertiserRecord {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		log.Warn("payload is not a JSON array", zap.Error(err))
		return nil
	}

	out := make([]entity.AdvertiserRecord, 0, len(elems))
	for i, el := range elems {
		var r rawRecord
		if err := json.Unmarshal(el, &r); err != nil {
			log.Warn("skip malformed record", zap.Int("index", i), zap.Error(err))
			continue
		}
		if r.AdvertiserID == nil || r.Date == nil || r.Clicks == nil || r.Impressions == nil {
			log.Warn("skip record with missing fields", zap.Int("index", i))
			continue
		}
		if *r.Clicks < 0 || *r.Impressions < 0 {
			log.Warn("skip record with negative counts", zap.Int("index", i))
			continue
		}
		out = append(out, entity.AdvertiserRecord{
			AdvertiserID: *r.AdvertiserID,
			Date:         *r.Date,
			Clicks:       *r.Clicks,
			Impressions:  *r.Impressions,
		})
	}
	return out
}
