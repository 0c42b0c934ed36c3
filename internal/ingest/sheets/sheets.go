// Package sheets fetches one published-to-web Google Sheet tab and parses
// its HTML table into an ingest.Table.
package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest/util"
)

type Config struct {
	Name  string // source-group tag
	URL   string // pubhtml (or export) URL of one tab
	Token string // optional bearer token for private export URLs
}

type Source struct {
	cfg     Config
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, hc *http.Client, limiter *util.HostLimiter) *Source {
	if hc == nil {
		hc = &http.Client{Timeout: 20 * time.Second}
	}
	return &Source{cfg: cfg, hc: hc, limiter: limiter}
}

func (s *Source) Name() string { return s.cfg.Name }

func (s *Source) Fetch(ctx context.Context) (ingest.Table, error) {
	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, s.cfg.URL); err != nil {
			return ingest.Table{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return ingest.Table{}, fmt.Errorf("sheets request: %w", err)
	}
	req.Header.Set("User-Agent", "taller-engine/1.0 (+local)")
	if s.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	}

	res, err := s.hc.Do(req)
	if err != nil {
		return ingest.Table{}, fmt.Errorf("sheets get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return ingest.Table{}, fmt.Errorf("sheets status %d", res.StatusCode)
	}

	return ParseTable(res.Body)
}

// ParseTable reads the first <table> of a published-sheet page. The first
// row with any non-empty cell is the header; Google pads short rows, so
// trailing blank rows are kept for the ingestor to drop by plate.
func ParseTable(r io.Reader) (ingest.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ingest.Table{}, fmt.Errorf("sheets parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return ingest.Table{}, fmt.Errorf("no table in response")
	}

	var out ingest.Table
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		empty := true
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			// Skip the frozen row-number gutter column pubhtml adds.
			if cell.HasClass("row-headers-background") {
				return
			}
			text := util.CleanText(cell.Text())
			if text != "" {
				empty = false
			}
			cells = append(cells, text)
		})
		if len(cells) == 0 {
			return
		}
		if out.Header == nil {
			if empty {
				return // leading blank rows before the header
			}
			out.Header = cells
			return
		}
		out.Rows = append(out.Rows, cells)
	})

	if out.Header == nil {
		return ingest.Table{}, fmt.Errorf("table has no header row")
	}
	return out, nil
}
