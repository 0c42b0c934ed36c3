// Package report builds the two aggregates the dashboard renders: the
// billing totals and the Gantt-style timeline.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/domain"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest"
)

// Summary holds the headline metrics: price sums grouped by billing state.
type Summary struct {
	Billed    decimal.Decimal `json:"billed"`    // FAC
	ThisMonth decimal.Decimal `json:"thisMonth"` // SI
	NextMonth decimal.Decimal `json:"nextMonth"` // NO

	BilledCount    int `json:"billedCount"`
	ThisMonthCount int `json:"thisMonthCount"`
	NextMonthCount int `json:"nextMonthCount"`
	OtherCount     int `json:"otherCount"`
}

// Bar is one timeline entry spanning [Start, End], labeled and colored
// the way the original chart was: text is the plate, hover label is
// "PLATE - VEHICLE", color keys off the source group.
type Bar struct {
	Plate   string              `json:"plate"`
	Vehicle string              `json:"vehicle"`
	Label   string              `json:"label"`
	Group   string              `json:"group"`
	Billing domain.BillingState `json:"billing"`
	Start   time.Time           `json:"start"`
	End     time.Time           `json:"end"`
	Days    float64             `json:"days"`
}

// Timeline is the schedule chart data: pending work only (billing state
// SI or NO), with a marker for the current day.
type Timeline struct {
	Today time.Time `json:"today"`
	Bars  []Bar     `json:"bars"`
}

// Dashboard is the full payload the rendering layer consumes.
type Dashboard struct {
	GeneratedAt time.Time             `json:"generatedAt"`
	Summary     Summary               `json:"summary"`
	Timeline    Timeline              `json:"timeline"`
	Jobs        []domain.ScheduledJob `json:"jobs"`
	Groups      []ingest.GroupStatus  `json:"groups"`
}

// BuildSummary sums prices per billing state.
func BuildSummary(jobs []domain.ScheduledJob) Summary {
	s := Summary{
		Billed:    decimal.Zero,
		ThisMonth: decimal.Zero,
		NextMonth: decimal.Zero,
	}
	for _, j := range jobs {
		switch j.Billing {
		case domain.BillingBilled:
			s.Billed = s.Billed.Add(j.Price)
			s.BilledCount++
		case domain.BillingThisMonth:
			s.ThisMonth = s.ThisMonth.Add(j.Price)
			s.ThisMonthCount++
		case domain.BillingNextMonth:
			s.NextMonth = s.NextMonth.Add(j.Price)
			s.NextMonthCount++
		default:
			s.OtherCount++
		}
	}
	return s
}

// BuildTimeline keeps the jobs still in play (SI and NO), sorted by group,
// start, then plate so bars group visually per work team.
func BuildTimeline(jobs []domain.ScheduledJob, today time.Time) Timeline {
	tl := Timeline{Today: today, Bars: []Bar{}}
	for _, j := range jobs {
		if j.Billing != domain.BillingThisMonth && j.Billing != domain.BillingNextMonth {
			continue
		}
		tl.Bars = append(tl.Bars, Bar{
			Plate:   j.Plate,
			Vehicle: j.Vehicle,
			Label:   j.Plate + " - " + j.Vehicle,
			Group:   j.SourceGroup,
			Billing: j.Billing,
			Start:   j.Start,
			End:     j.End,
			Days:    j.DurationDays,
		})
	}
	sort.SliceStable(tl.Bars, func(a, b int) bool {
		x, y := tl.Bars[a], tl.Bars[b]
		if x.Group != y.Group {
			return x.Group < y.Group
		}
		if !x.Start.Equal(y.Start) {
			return x.Start.Before(y.Start)
		}
		return x.Plate < y.Plate
	})
	return tl
}
