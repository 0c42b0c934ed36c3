// Package ingest merges the shop's source tabs into one tagged collection
// of raw jobs. A broken tab never takes the others down: each group's
// failure is recorded on its status and the run continues.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/domain"
)

// Table is one tab's worth of string cells, header first.
type Table struct {
	Header []string
	Rows   [][]string
}

// Source is one named work-group tab.
type Source interface {
	Name() string
	Fetch(ctx context.Context) (Table, error)
}

// GroupStatus reports how one source group fared during a run.
type GroupStatus struct {
	Group     string    `json:"group"`
	FetchedAt time.Time `json:"fetchedAt"`
	Rows      int       `json:"rows"`
	Kept      int       `json:"kept"`
	Dropped   int       `json:"dropped"` // rows without a plate
	Err       string    `json:"err,omitempty"`
}

func (g GroupStatus) OK() bool { return g.Err == "" }

// Result is the flat, tagged output of one ingestion pass. Jobs is empty
// (never nil-as-error) when every group fails; the dashboard degrades to
// "no data".
type Result struct {
	Jobs   []domain.RawJob `json:"jobs"`
	Groups []GroupStatus   `json:"groups"`
}

// Run fetches every source in order and flattens the survivors. Fetching
// is sequential on purpose: volume is a handful of tabs and the cache in
// front of this absorbs any latency.
func Run(ctx context.Context, sources []Source) Result {
	res := Result{Jobs: []domain.RawJob{}}

	for _, src := range sources {
		st := runOne(ctx, src, &res)
		if st.OK() {
			log.Info().Str("group", st.Group).Int("rows", st.Rows).Int("kept", st.Kept).
				Int("dropped", st.Dropped).Msg("group ingested")
		} else {
			log.Warn().Str("group", st.Group).Str("err", st.Err).Msg("group failed, continuing")
		}
		res.Groups = append(res.Groups, st)
	}

	return res
}

// runOne isolates a single group, including panic recovery: a panicking
// parser is just another group failure.
func runOne(ctx context.Context, src Source, res *Result) (st GroupStatus) {
	st = GroupStatus{Group: src.Name(), FetchedAt: time.Now().UTC()}

	defer func() {
		if r := recover(); r != nil {
			st.Err = fmt.Sprintf("panic: %v", r)
		}
	}()

	table, err := src.Fetch(ctx)
	if err != nil {
		st.Err = err.Error()
		return st
	}

	sch, err := resolveSchema(table.Header)
	if err != nil {
		st.Err = err.Error()
		return st
	}

	st.Rows = len(table.Rows)
	for _, row := range table.Rows {
		plate := sch.cell(row, sch.plate)
		if plate == "" {
			// rows without a plate cannot be scheduled or displayed
			st.Dropped++
			continue
		}
		res.Jobs = append(res.Jobs, domain.RawJob{
			Plate:        plate,
			Vehicle:      sch.cell(row, sch.vehicle),
			Advisor:      sch.cell(row, sch.advisor),
			PromisedDate: sch.cell(row, sch.promised),
			EffortCount:  sch.cell(row, sch.effort),
			Price:        sch.cell(row, sch.price),
			BillingRaw:   sch.cell(row, sch.billing),
			SourceGroup:  src.Name(),
		})
		st.Kept++
	}
	return st
}
