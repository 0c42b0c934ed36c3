// Package schedule turns the messy spreadsheet cells of a raw job into a
// well-defined {start, end, duration} interval plus billing data. Every
// field failure degrades to a documented default; a record is never
// dropped or errored here.
package schedule

import (
	"time"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/domain"
)

// Normalizer maps raw jobs to scheduled jobs. The clock is injected so
// the today anchor is deterministic under test.
type Normalizer struct {
	Now func() time.Time
}

func New() Normalizer {
	return Normalizer{Now: time.Now}
}

// Normalize is a pure per-record transformation:
//
//	end      = parsed promised date, else today
//	duration = parsed paño count clamped to >= 1
//	start    = end - duration days (exact calendar subtraction)
//
// Records with unparseable dates anchor at today so they still render;
// many of them clustering on the current day is expected.
func (n Normalizer) Normalize(raw domain.RawJob) domain.ScheduledJob {
	end, promised := ParsePromisedDate(raw.PromisedDate)
	if !promised {
		end = DateOnly(n.Now())
	}

	days := DurationDays(raw.EffortCount)
	start := end.Add(-time.Duration(days * float64(24*time.Hour)))

	return domain.ScheduledJob{
		Plate:        raw.Plate,
		Vehicle:      raw.Vehicle,
		Advisor:      raw.Advisor,
		SourceGroup:  raw.SourceGroup,
		Billing:      domain.ParseBillingState(raw.BillingRaw),
		BillingRaw:   raw.BillingRaw,
		Start:        start,
		End:          end,
		DurationDays: days,
		Price:        ParsePrice(raw.Price),
		DatePromised: promised,
	}
}

// NormalizeAll maps a whole ingested collection. Order is preserved;
// records are independent of each other.
func (n Normalizer) NormalizeAll(raws []domain.RawJob) []domain.ScheduledJob {
	out := make([]domain.ScheduledJob, 0, len(raws))
	for _, r := range raws {
		out = append(out, n.Normalize(r))
	}
	return out
}
