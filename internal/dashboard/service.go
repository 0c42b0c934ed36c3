// Package dashboard orchestrates one refresh pass: build sources from
// config, ingest, normalize, aggregate, persist a snapshot. A TTL cache
// sits in front so page loads inside the cache window reuse the last
// computation.
package dashboard

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/cache"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/config"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/events"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest/sheets"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest/util"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/ingest/xlsx"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/report"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/schedule"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/secrets"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/store"
)

// Status mirrors the last refresh outcome for the UI.
type Status struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastJobs  int    `json:"last_jobs"`
	Running   bool   `json:"running"`
}

type Service struct {
	cfgVal  *atomic.Value // stores config.Config
	db      *store.DB
	hub     *events.Hub
	cache   *cache.Cache[report.Dashboard]
	limiter *util.HostLimiter
	hc      *http.Client
	status  atomic.Value // Status

	now        func() time.Time
	sheetToken func(account string) (string, error)
}

func New(cfgVal *atomic.Value, db *store.DB, hub *events.Hub) *Service {
	cfg := cfgVal.Load().(config.Config)

	s := &Service{
		cfgVal:     cfgVal,
		db:         db,
		hub:        hub,
		cache:      cache.New[report.Dashboard](cfg.CacheTTL()),
		limiter:    util.NewHostLimiter(cfg.Fetch.RequestsPerSec, cfg.Fetch.Burst),
		hc:         &http.Client{Timeout: cfg.FetchTimeout()},
		now:        time.Now,
		sheetToken: secrets.GetSheetToken,
	}
	s.status.Store(Status{})
	return s
}

// Dashboard returns the cached payload, recomputing when stale. force
// invalidates first (the user-initiated clear from the refresh button).
func (s *Service) Dashboard(ctx context.Context, force bool) (report.Dashboard, error) {
	if force {
		s.cache.Invalidate()
	}
	return s.cache.Get(ctx, s.refresh)
}

func (s *Service) Invalidate() { s.cache.Invalidate() }

func (s *Service) Status() Status {
	return s.status.Load().(Status)
}

// refresh is the full recompute: everything is derived from the latest
// source snapshot, nothing carries over from the previous pass.
func (s *Service) refresh(ctx context.Context) (report.Dashboard, error) {
	cfg := s.cfgVal.Load().(config.Config)

	st := s.Status()
	st.Running = true
	st.LastRunAt = s.now().Format(time.RFC3339)
	s.status.Store(st)

	res := ingest.Run(ctx, s.buildSources(cfg))

	norm := schedule.Normalizer{Now: s.now}
	jobs := norm.NormalizeAll(res.Jobs)

	today := schedule.DateOnly(s.now())
	dash := report.Dashboard{
		GeneratedAt: s.now().UTC(),
		Summary:     report.BuildSummary(jobs),
		Timeline:    report.BuildTimeline(jobs, today),
		Jobs:        jobs,
		Groups:      res.Groups,
	}

	s.persistSnapshot(ctx, cfg, res)

	st = s.Status()
	st.Running = false
	st.LastJobs = len(jobs)
	st.LastError = firstGroupError(res.Groups)
	if st.LastError == "" {
		st.LastOkAt = s.now().Format(time.RFC3339)
	}
	s.status.Store(st)

	if s.hub != nil {
		s.hub.Publish(events.MakeEvent("", events.TypeDataRefreshed, 1, map[string]any{
			"jobs":   len(jobs),
			"groups": len(res.Groups),
		}))
	}

	log.Info().Int("jobs", len(jobs)).Int("bars", len(dash.Timeline.Bars)).Msg("dashboard refreshed")
	return dash, nil
}

func (s *Service) buildSources(cfg config.Config) []ingest.Source {
	token := ""
	if cfg.Fetch.TokenAccount != "" {
		t, err := s.sheetToken(cfg.Fetch.TokenAccount)
		if err != nil {
			log.Warn().Str("account", cfg.Fetch.TokenAccount).Err(err).Msg("sheet token unavailable, trying public fetch")
		} else {
			token = t
		}
	}

	var out []ingest.Source
	for _, src := range cfg.Sources {
		switch src.Kind {
		case config.KindGSheet:
			out = append(out, sheets.New(sheets.Config{
				Name:  src.Name,
				URL:   src.URL,
				Token: token,
			}, s.hc, s.limiter))
		case config.KindXLSX:
			out = append(out, xlsx.New(xlsx.Config{
				Name:  src.Name,
				Path:  src.Path,
				Sheet: src.Sheet,
			}))
		default:
			log.Warn().Str("group", src.Name).Str("kind", src.Kind).Msg("unknown source kind, skipping")
		}
	}
	return out
}

// persistSnapshot is best-effort: the snapshot history is introspection,
// never load-bearing for the live dashboard.
func (s *Service) persistSnapshot(ctx context.Context, cfg config.Config, res ingest.Result) {
	if s.db == nil {
		return
	}
	if _, err := store.SaveSnapshot(ctx, s.db.Pool, res); err != nil {
		log.Warn().Err(err).Msg("snapshot save failed")
		return
	}
	if err := store.Prune(ctx, s.db.Pool, cfg.Store.KeepSnapshots); err != nil {
		log.Warn().Err(err).Msg("snapshot prune failed")
	}
}

func firstGroupError(groups []ingest.GroupStatus) string {
	for _, g := range groups {
		if !g.OK() {
			return g.Group + ": " + g.Err
		}
	}
	return ""
}
