package service

import (
	"testing"

	"go.uber.org/zap"
)

func TestParseRecords_ValidArray(t *testing.T) {
	body := []byte(`[
		{"advertiser_id": 123, "ymd": "2016-06-01", "num_clicks": 3, "num_impressions": 10},
		{"advertiser_id": 124, "ymd": "2016-06-02", "num_clicks": 7, "num_impressions": 21}
	]`)

	recs := ParseRecords(zap.NewNop(), body)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].AdvertiserID != 123 || recs[0].Date != "2016-06-01" || recs[0].Clicks != 3 || recs[0].Impressions != 10 {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if recs[1].AdvertiserID != 124 || recs[1].Date != "2016-06-02" {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
}

func TestParseRecords_MissingFieldSkipsOnlyThatElement(t *testing.T) {
	// Средний элемент без num_clicks: соседи должны уцелеть
	body := []byte(`[
		{"advertiser_id": 1, "ymd": "2016-06-01", "num_clicks": 1, "num_impressions": 2},
		{"advertiser_id": 2, "ymd": "2016-06-02", "num_impressions": 4},
		{"advertiser_id": 3, "ymd": "2016-06-03", "num_clicks": 5, "num_impressions": 6}
	]`)

	recs := ParseRecords(zap.NewNop(), body)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Date != "2016-06-01" || recs[1].Date != "2016-06-03" {
		t.Fatalf("wrong records survived: %+v", recs)
	}
}

func TestParseRecords_WrongTypeSkipsElement(t *testing.T) {
	body := []byte(`[
		{"advertiser_id": 1, "ymd": "2016-06-01", "num_clicks": "three", "num_impressions": 2},
		{"advertiser_id": 2, "ymd": "2016-06-02", "num_clicks": 3, "num_impressions": 4}
	]`)

	recs := ParseRecords(zap.NewNop(), body)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].AdvertiserID != 2 {
		t.Fatalf("expected record of advertiser 2, got %+v", recs[0])
	}
}

func TestParseRecords_NegativeCountsSkipped(t *testing.T) {
	body := []byte(`[{"advertiser_id": 1, "ymd": "2016-06-01", "num_clicks": -3, "num_impressions": 2}]`)
	if recs := ParseRecords(zap.NewNop(), body); len(recs) != 0 {
		t.Fatalf("expected 0 records, got %d", len(recs))
	}
}

func TestParseRecords_NotJSON(t *testing.T) {
	if recs := ParseRecords(zap.NewNop(), []byte("<html>oops</html>")); len(recs) != 0 {
		t.Fatalf("expected 0 records, got %d", len(recs))
	}
}

func TestParseRecords_NotAnArray(t *testing.T) {
	body := []byte(`{"advertiser_id": 1, "ymd": "2016-06-01", "num_clicks": 1, "num_impressions": 2}`)
	if recs := ParseRecords(zap.NewNop(), body); len(recs) != 0 {
		t.Fatalf("expected 0 records, got %d", len(recs))
	}
}
