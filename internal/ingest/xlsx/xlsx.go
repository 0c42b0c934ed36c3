// Package xlsx reads one sheet of a local workbook into an ingest.Table,
// for shops that export the planning spreadsheet to a file instead of
// publishing it.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest"
)

type Config struct {
	Name  string // source-group tag
	Path  string // workbook path
	Sheet string // sheet name; empty means the first sheet
}

type Source struct {
	cfg Config
}

func New(cfg Config) *Source { return &Source{cfg: cfg} }

func (s *Source) Name() string { return s.cfg.Name }

func (s *Source) Fetch(ctx context.Context) (ingest.Table, error) {
	if err := ctx.Err(); err != nil {
		return ingest.Table{}, err
	}

	f, err := excelize.OpenFile(s.cfg.Path)
	if err != nil {
		return ingest.Table{}, fmt.Errorf("xlsx open %s: %w", s.cfg.Path, err)
	}
	defer f.Close()

	sheet := s.cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return ingest.Table{}, fmt.Errorf("xlsx read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return ingest.Table{}, fmt.Errorf("sheet %q is empty", sheet)
	}

	return ingest.Table{Header: rows[0], Rows: rows[1:]}, nil
}
