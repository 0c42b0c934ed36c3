package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BillingState classifies a job for the headline metrics. Values come
// straight from the FAC column; nothing is inferred.
type BillingState string

const (
	BillingBilled       BillingState = "FAC" // already billed
	BillingThisMonth    BillingState = "SI"  // billable this month
	BillingNextMonth    BillingState = "NO"  // billable next month
	BillingUnclassified BillingState = ""
)

// ParseBillingState maps a raw FAC cell onto the three known states.
// Anything else (including blank) is Unclassified; the raw text is kept
// on the job so nothing is lost.
func ParseBillingState(cell string) BillingState {
	switch strings.ToUpper(strings.TrimSpace(cell)) {
	case "FAC":
		return BillingBilled
	case "SI":
		return BillingThisMonth
	case "NO":
		return BillingNextMonth
	}
	return BillingUnclassified
}

// RawJob is one spreadsheet row as fetched, all cells still free text.
// SourceGroup is assigned at ingestion; it is not a source column.
type RawJob struct {
	Plate        string `json:"plate"`
	Vehicle      string `json:"vehicle"`
	Advisor      string `json:"advisor"`
	PromisedDate string `json:"promisedDate"`
	EffortCount  string `json:"effortCount"` // "paños", expected to contain a number
	Price        string `json:"price"`
	BillingRaw   string `json:"billingRaw"`
	SourceGroup  string `json:"sourceGroup"`
}

// ScheduledJob is the normalized form consumed by the dashboard.
// Immutable once computed; recomputed from scratch on every refresh.
type ScheduledJob struct {
	Plate       string       `json:"plate"`
	Vehicle     string       `json:"vehicle"`
	Advisor     string       `json:"advisor"`
	SourceGroup string       `json:"sourceGroup"`
	Billing     BillingState `json:"billing"`
	BillingRaw  string       `json:"billingRaw"`

	// Start/End are naive calendar dates modeled as UTC midnight; a
	// fractional duration shifts Start into the day (1.5 paños ending at
	// midnight starts at noon two days earlier).
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	DurationDays float64         `json:"durationDays"`
	Price        decimal.Decimal `json:"price"`

	// DatePromised reports whether End came from the source cell or from
	// the today fallback. Fallback jobs cluster on the current day in the
	// timeline; that is expected, not a bug.
	DatePromised bool `json:"datePromised"`
}
