package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_audit/internal/adapters/observability"
	"hotel_audit/internal/app"
	"hotel_audit/internal/domain"
	"hotel_audit/internal/shared"
	"hotel_audit/internal/storage/fsstore"
)

// Regenerates both export artifacts for every saved session snapshot.
// Useful after exporter formatting changes or for recovering artifacts
// that were deleted.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	store, err := fsstore.New(cfg.AuditsDir, cfg.PhotosDir)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open storage directories")
	}

	paths, err := store.ListSnapshots(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("listing snapshots failed")
	}
	log.Info().Int("snapshots", len(paths)).Int("workers", cfg.ExportWorkers).Msg("exporter starting")

	exp := app.NewExportService(cfg.AuditsDir)
	sem := semaphore.NewWeighted(int64(cfg.ExportWorkers))
	var wg sync.WaitGroup

	for _, path := range paths {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release(1)

			sn, err := store.LoadSnapshot(ctx, path)
			if err != nil {
				log.Warn().Str("path", path).Err(err).Msg("snapshot unreadable, skipped")
				return
			}
			sess := domain.SessionFromSnapshot(sn)
			if _, err := exp.ExportExcel(sess); err != nil {
				log.Warn().Str("session", sess.SessionID).Err(err).Msg("excel re-export failed")
			}
			if _, err := exp.ExportReport(sess); err != nil {
				log.Warn().Str("session", sess.SessionID).Err(err).Msg("report re-export failed")
			}
			log.Info().Str("session", sess.SessionID).Msg("re-export done")
		}(path)
	}

	wg.Wait()
	log.Info().Msg("exporter completed")
}
