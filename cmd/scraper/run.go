package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/jeremymartinezq/sec-8k-extractor/internal/ai"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/config"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/edgar"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/history"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/logger"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/notify"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/pipeline"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/report"
	"github.com/jeremymartinezq/sec-8k-extractor/internal/types"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() {
	// A missing .env is normal; anything else is worth knowing about but not fatal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Printf("Warning: failed to load .env file: %v\n", err)
	}
}

// runScraper always writes the CSV, even when the ticker map could not be
// loaded; that failure is still returned so the process exits non-zero.
func runScraper(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	base, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = base.Sync() }()

	log := base.With(zap.String("run_id", uuid.NewString()))
	log.Info("Starting SEC 8-K product extraction",
		zap.Strings("companies", cfg.Pipeline.Companies),
		zap.Strings("keywords", cfg.Pipeline.Keywords),
		zap.String("form", cfg.Pipeline.FormType))

	client := edgar.NewClient(cfg.EDGAR, log.Named("edgar"))
	results, runErr := pipeline.New(cfg.Pipeline, client, log.Named("pipeline")).Run(ctx)

	rows := results
	if len(rows) == 0 {
		if cfg.Output.Fallback {
			rows = report.FallbackResults()
			log.Warn("No product filings found, writing fallback data", zap.Int("rows", len(rows)))
			log.Warn("NOTE: This is simulated data for demonstration purposes only.")
		} else {
			log.Warn("No product-related filings found")
		}
	}

	if err := report.WriteCSV(cfg.Output.Path, rows); err != nil {
		return errors.Join(runErr, err)
	}
	log.Info("Saved results", zap.Int("count", len(rows)), zap.String("path", cfg.Output.Path))

	var analyses map[string]*ai.Analysis
	if cfg.Email.Enabled && len(results) > 0 {
		analyses = notifyNew(ctx, cfg, results, log.Named("notify"))
	}

	items := make([]notify.NotificationData, 0, len(rows))
	for _, r := range rows {
		items = append(items, notify.NotificationData{Result: r, Analysis: analyses[r.Key()]})
	}
	notify.ReportResults(stdout, items, cfg.Output.Path)

	return runErr
}

// notifyNew emails results not reported by earlier runs and returns the AI
// analyses it produced, keyed by result key.
func notifyNew(ctx context.Context, cfg config.Config, results []types.Result, log *zap.Logger) map[string]*ai.Analysis {
	if !cfg.Email.Ready() {
		log.Warn("Notifications requested but SMTP settings are incomplete, skipping email")
		return nil
	}

	hist, err := history.NewManager(cfg.History.Path, history.DefaultTimeZone, cfg.History.RetentionDays, log.Named("history"))
	if err != nil {
		log.Error("Failed to set up notification history", zap.Error(err))
		return nil
	}

	fresh := hist.FilterNew(results)
	if len(fresh) == 0 {
		log.Info("No new filings to notify about")
		return nil
	}

	analyses := make(map[string]*ai.Analysis)
	if cfg.AI.Enabled() {
		summarizer, err := ai.NewSummarizer(ctx, cfg.AI, log.Named("ai"))
		if err != nil {
			log.Warn("AI analysis unavailable", zap.Error(err))
		} else {
			for _, r := range fresh {
				analysis, err := summarizer.Summarize(ctx, r)
				if err != nil {
					log.Warn("AI analysis failed", zap.String("key", r.Key()), zap.Error(err))
					continue
				}
				analyses[r.Key()] = analysis
			}
		}
	}

	items := make([]notify.NotificationData, 0, len(fresh))
	for _, r := range fresh {
		items = append(items, notify.NotificationData{Result: r, Analysis: analyses[r.Key()]})
	}

	notifier := notify.NewNotifier(notify.NewHTMLEmailRenderer(), notify.NewEmailSender(cfg.Email, log), log)
	sent := notifier.Dispatch(items)
	log.Info("Sent notifications", zap.Int("sent", sent), zap.Int("new", len(fresh)))

	if err := hist.Record(fresh); err != nil {
		log.Error("Failed to save notification history", zap.Error(err))
	}
	return analyses
}
