package schedule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/domain"
)

func fixedNow(t *testing.T) func() time.Time {
	t.Helper()
	return func() time.Time {
		return time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	}
}

func TestNormalize_PromisedDateAndEffort(t *testing.T) {
	n := Normalizer{Now: fixedNow(t)}

	got := n.Normalize(domain.RawJob{
		Plate:        "AB123CD",
		Vehicle:      "Toyota Hilux",
		PromisedDate: "15/03/2025",
		EffortCount:  "2",
		Price:        "$ 1.234,56",
		BillingRaw:   "SI",
		SourceGroup:  "Chapa",
	})

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), got.End)
	assert.Equal(t, 2.0, got.DurationDays)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), got.Start)
	assert.True(t, got.DatePromised)
	assert.Equal(t, domain.BillingThisMonth, got.Billing)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(got.Price))
}

func TestNormalize_EmptyFieldsAnchorToday(t *testing.T) {
	n := Normalizer{Now: fixedNow(t)}

	got := n.Normalize(domain.RawJob{Plate: "XX000XX"})

	// today = 2025-06-01; duration floors to 1
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got.End)
	assert.Equal(t, 1.0, got.DurationDays)
	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), got.Start)
	assert.False(t, got.DatePromised)
	assert.Equal(t, domain.BillingUnclassified, got.Billing)
	assert.True(t, got.Price.IsZero())
}

// Fractional paños keep their fraction: the interval boundary lands
// mid-day and the renderer draws the sub-day span.
func TestNormalize_FractionalDuration(t *testing.T) {
	n := Normalizer{Now: fixedNow(t)}

	got := n.Normalize(domain.RawJob{
		Plate:        "AC456EF",
		PromisedDate: "21 de enero de 2026",
		EffortCount:  "1,5",
	})

	assert.Equal(t, time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC), got.End)
	assert.Equal(t, 1.5, got.DurationDays)
	assert.Equal(t, time.Date(2026, 1, 19, 12, 0, 0, 0, time.UTC), got.Start)
}

func TestNormalize_StartNeverAfterEnd(t *testing.T) {
	n := Normalizer{Now: fixedNow(t)}

	raws := []domain.RawJob{
		{Plate: "A", PromisedDate: "15/03/2025", EffortCount: "2"},
		{Plate: "B", PromisedDate: "", EffortCount: ""},
		{Plate: "C", PromisedDate: "basura", EffortCount: "-3"},
		{Plate: "D", PromisedDate: "21 de enero de 2026", EffortCount: "0"},
		{Plate: "E", PromisedDate: "1/1/2025", EffortCount: "10 aprox"},
	}
	for _, got := range n.NormalizeAll(raws) {
		assert.True(t, got.Start.Before(got.End), "plate %s: start %v end %v", got.Plate, got.Start, got.End)
		wantStart := got.End.Add(-time.Duration(got.DurationDays * float64(24*time.Hour)))
		assert.True(t, got.Start.Equal(wantStart), "plate %s", got.Plate)
	}
}

// Normalization is a pure function of the source snapshot: same input,
// same clock, identical output.
func TestNormalizeAll_Deterministic(t *testing.T) {
	n := Normalizer{Now: fixedNow(t)}

	raws := []domain.RawJob{
		{Plate: "AB123CD", PromisedDate: "15/03/2025", EffortCount: "2", Price: "$ 10,50", BillingRaw: "FAC"},
		{Plate: "XX000XX", PromisedDate: "no date", EffortCount: "aprox", BillingRaw: "??"},
	}

	first := n.NormalizeAll(raws)
	second := n.NormalizeAll(raws)
	require.Equal(t, first, second)
}

func TestNormalize_NeverDropsRecords(t *testing.T) {
	n := Normalizer{Now: fixedNow(t)}

	raws := []domain.RawJob{
		{Plate: "A", PromisedDate: "garbage", EffortCount: "garbage", Price: "garbage", BillingRaw: "garbage"},
		{Plate: "B"},
		{Plate: "C", PromisedDate: "99/99/9999"},
	}
	assert.Len(t, n.NormalizeAll(raws), len(raws))
}

func TestNormalize_BillingPassthrough(t *testing.T) {
	n := Normalizer{Now: fixedNow(t)}

	for raw, want := range map[string]domain.BillingState{
		"FAC":   domain.BillingBilled,
		"fac":   domain.BillingBilled,
		" SI ":  domain.BillingThisMonth,
		"NO":    domain.BillingNextMonth,
		"":      domain.BillingUnclassified,
		"TAL":   domain.BillingUnclassified,
		"maybe": domain.BillingUnclassified,
	} {
		got := n.Normalize(domain.RawJob{Plate: "X", BillingRaw: raw})
		assert.Equal(t, want, got.Billing, "raw %q", raw)
		assert.Equal(t, raw, got.BillingRaw, "raw cell is preserved verbatim")
	}
}
