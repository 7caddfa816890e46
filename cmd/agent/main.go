// The agent works through queued job matches unattended: it loads each
// match's listing page in a headless browser, fills what it can and
// submits, parking captcha-blocked applications for manual review.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobpilot/internal/app"
	"jobpilot/internal/automation"
	"jobpilot/internal/catalog"
	"jobpilot/internal/config"
	"jobpilot/internal/database/migration"
	"jobpilot/internal/repository"
	"jobpilot/internal/usecase"
)

func main() {
	batch := flag.Int("batch", 0, "max matches per pass (0 = evaluation batch size)")
	interval := flag.Duration("interval", 0, "poll interval, run once when 0")
	refreshURL := flag.String("refresh-url", "", "listing page to refresh the catalog from before each pass")
	refreshSource := flag.String("refresh-source", "remote", "source label for refreshed catalog entries")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.Default()

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	matchRepo := repository.NewPostgresJobMatchRepository(c.DB)
	logRepo := repository.NewPostgresApplicationLogRepository(c.DB)
	captchaRepo := repository.NewPostgresCaptchaQueueRepository(c.DB)
	submitter := automation.NewSubmitter(cfg.Application.Headless, cfg.Application.SubmitTimeout, logger)

	appUC := usecase.NewApplicationUsecase(matchRepo, logRepo, captchaRepo, submitter, c.Cache, logger)

	catalogStore := catalog.NewFileStore(cfg.Storage.SampleJobFile)
	catalogUC := usecase.NewCatalogUsecase(catalogStore, catalog.NewFetcher(logger), logger)

	limit := *batch
	if limit <= 0 {
		limit = cfg.Evaluation.BatchSize
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runPass := func() {
		if *refreshURL != "" {
			src := catalog.RemoteSource{Name: *refreshSource, ListURL: *refreshURL}
			if _, err := catalogUC.Refresh(ctx, src, limit); err != nil {
				logger.Printf("Agent catalog refresh failed | err=%v", err)
			}
		}

		processed, err := appUC.SubmitQueued(ctx, limit, cfg.Application.RetryAttempts, cfg.Application.RetryBackoff)
		if err != nil {
			logger.Printf("Agent pass failed | processed=%d err=%v", processed, err)
			return
		}
		logger.Printf("Agent pass done | processed=%d", processed)
	}

	runPass()
	if *interval <= 0 {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runPass()
		}
	}
}
