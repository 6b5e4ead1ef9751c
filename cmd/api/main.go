package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "hotel_audit/internal/adapters/http_server"
	"hotel_audit/internal/adapters/observability"
	redisad "hotel_audit/internal/adapters/redis"
	"hotel_audit/internal/app"
	"hotel_audit/internal/catalog"
	"hotel_audit/internal/shared"
	"hotel_audit/internal/storage/fsstore"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// checklist catalog: loaded once, passed by reference everywhere
	cat := catalog.Load(cfg.ChecklistPath)
	if cat.Empty() {
		log.Warn().Msg("checklist catalog is empty, audits will have no items")
	}

	store, err := fsstore.New(cfg.AuditsDir, cfg.PhotosDir)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create storage directories, check folder permissions")
	}

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	audit := app.NewAuditService(cat, store, store, cache)
	q := app.NewQueryService(audit, cache, cfg.CacheTTL)
	exp := app.NewExportService(cfg.AuditsDir)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Audit: audit, Q: q, Export: exp, UploadRPS: cfg.UploadRPS})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("audit API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
