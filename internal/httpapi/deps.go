package httpapi

import (
	"context"
	"sync/atomic"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/config"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/dashboard"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/events"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/report"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/store"
)

type Deps struct {
	Hub   *events.Hub
	Store *store.DB

	// Atomic stores
	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Dashboard entrypoints (injected for testability)
	GetDashboard func(ctx context.Context, force bool) (report.Dashboard, error)
	Invalidate   func()
	IngestStatus func() dashboard.Status
}
