package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/posventa-ciel/planificacion-taller-chapa/internal/config"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/dashboard"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/events"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/httpapi"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/poll"
	"github.com/posventa-ciel/planificacion-taller-chapa/internal/store"
)

func main() {
	initLogging()

	// Prices go to the UI as plain JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	// Engine data dir: use env if provided (the desktop shell can pass
	// one), else a local folder.
	dataDir := os.Getenv("TALLER_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("data dir")
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config bootstrap failed")
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatal().Err(err).Str("path", userCfgPath).Msg("config load failed")
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		for _, e := range vr.Errors {
			log.Error().Msg(e)
		}
		log.Fatal().Msg("config invalid")
	}
	for _, warn := range vr.Warnings {
		log.Warn().Msg(warn)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "taller.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("store open")
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal().Err(err).Msg("store migrate")
	}

	hub := events.NewHub()
	svc := dashboard.New(&cfgVal, db, hub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if iv := cfg.RefreshInterval(); iv > 0 {
		go poll.Every(ctx, iv, "refresh", func(ctx context.Context) error {
			_, err := svc.Dashboard(ctx, false)
			return err
		})
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:          hub,
		Store:        db,
		CfgVal:       &cfgVal,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		GetDashboard: svc.Dashboard,
		Invalidate:   svc.Invalidate,
		IngestStatus: svc.Status,
	})

	handler := httpapi.Chain(mux,
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
	)

	addr := net.JoinHostPort("127.0.0.1", itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("listen")
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal().Err(err).Msg("shutdown token")
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Info().Str("addr", "http://"+addr).Str("config", userCfgPath).Msg("engine listening")
	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("serve")
	}
}

func initLogging() {
	zerolog.TimeFieldFormat = time.RFC3339
	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(os.Getenv("TALLER_LOG_LEVEL")); err == nil && lv != zerolog.NoLevel {
		level = lv
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(level)
}
