package httpapi

import (
	"context"
	"net/http"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/dashboard"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/report"
)

type DashboardHandler struct {
	Get    func(ctx context.Context, force bool) (report.Dashboard, error)
	Status func() dashboard.Status
}

func (h DashboardHandler) forced(r *http.Request) bool {
	return r.URL.Query().Get("refresh") == "1"
}

// Full reads the whole payload: summary, timeline, jobs, group statuses.
func (h DashboardHandler) Full(w http.ResponseWriter, r *http.Request) {
	d, err := h.Get(r.Context(), h.forced(r))
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "refresh_failed", err.Error())
		return
	}
	writeJSON(w, d)
}

// Summary serves the three headline billing totals.
func (h DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	d, err := h.Get(r.Context(), h.forced(r))
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "refresh_failed", err.Error())
		return
	}
	writeJSON(w, d.Summary)
}

// Schedule serves the timeline chart data.
func (h DashboardHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	d, err := h.Get(r.Context(), h.forced(r))
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "refresh_failed", err.Error())
		return
	}
	writeJSON(w, d.Timeline)
}

// Jobs serves every normalized record.
func (h DashboardHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	d, err := h.Get(r.Context(), h.forced(r))
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "refresh_failed", err.Error())
		return
	}
	writeJSON(w, d.Jobs)
}

func (h DashboardHandler) IngestStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Status())
}

type RefreshHandler struct {
	Get        func(ctx context.Context, force bool) (report.Dashboard, error)
	Invalidate func()
}

// Run is the user-initiated cache clear + recompute.
func (h RefreshHandler) Run(w http.ResponseWriter, r *http.Request) {
	h.Invalidate()
	d, err := h.Get(r.Context(), false)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "refresh_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"ok":          true,
		"jobs":        len(d.Jobs),
		"generatedAt": d.GeneratedAt,
	})
}
