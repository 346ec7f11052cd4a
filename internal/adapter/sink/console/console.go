package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/adlift/ad-aggregator/internal/entity"
)

// Sink prints the aggregated report, one line per date.
type Sink struct {
	w io.Writer
}

func New(w io.Writer) *Sink {
	if w == nil {
		w = os.Stdout
	}
	return &Sink{w: w}
}

func (s *Sink) Publish(_ context.Context, report entity.Report) error {
	for _, e := range report.Entries {
		if _, err := fmt.Fprintf(s.w, "%s:\tClicks: %d\tImpressions: %d\n", e.Date, e.Clicks, e.Impressions); err != nil {
			return err
		}
	}
	return nil
}
