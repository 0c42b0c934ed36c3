package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Dashboard
	dh := DashboardHandler{Get: d.GetDashboard, Status: d.IngestStatus}
	mux.HandleFunc("/api/dashboard", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Full,
	}))
	mux.HandleFunc("/api/summary", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Summary,
	}))
	mux.HandleFunc("/api/schedule", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Schedule,
	}))
	mux.HandleFunc("/api/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Jobs,
	}))
	mux.HandleFunc("/api/ingest/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.IngestStatus,
	}))

	rh := RefreshHandler{Get: d.GetDashboard, Invalidate: d.Invalidate}
	mux.HandleFunc("/api/refresh", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Run,
	}))

	// Snapshots
	sh := SnapshotsHandler{Store: d.Store}
	mux.HandleFunc("/api/snapshots", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.List,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/api/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/api/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sch := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/sheets", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.SetSheetToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
