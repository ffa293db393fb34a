package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/siteaudit/internal/config"
	"github.com/nao1215/siteaudit/internal/model"
)

// Factory builds the pipeline for one target, so per-site settings such as
// cookies or crawl depth can differ between targets.
type Factory func(target string) (*Pipeline, error)

// BatchProcessor audits multiple URLs concurrently.
type BatchProcessor struct {
	factory     Factory
	newReport   func(target string) *model.AuditReport
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent audits.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithReportBuilder sets how the empty report of a target is created.
// The default uses the default report language.
func WithReportBuilder(fn func(target string) *model.AuditReport) BatchOption {
	return func(b *BatchProcessor) {
		b.newReport = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(factory Factory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		factory:     factory,
		concurrency: config.DefaultConcurrency,
		newReport: func(target string) *model.AuditReport {
			return model.NewAuditReport(target, config.DefaultLanguage)
		},
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch audits targets with at most concurrency audits in flight.
//
// The returned slice has one report per target in input order. A failed
// audit keeps its error in the report and does not stop the others. The
// error is non-nil only when ctx was cancelled; targets that never started
// are then reported with the context error.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, targets []string) ([]*model.AuditReport, error) {
	bp.logger.Info("starting audits", "targets", len(targets), "concurrency", bp.concurrency)
	start := time.Now()

	results := make([]*model.AuditReport, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			report := bp.newReport(target)
			results[i] = report

			if err := gctx.Err(); err != nil {
				report.SetError(err)
				return err
			}

			bp.logger.Info("auditing", "url", target, "index", i+1, "total", len(targets))

			p, err := bp.factory(target)
			if err != nil {
				bp.logger.Warn("cannot build pipeline", "url", target, "error", err)
				report.SetError(err)
				return nil
			}
			if err := p.Execute(gctx, report); err != nil {
				bp.logger.Warn("audit failed", "url", target, "error", err)
				return nil
			}

			bp.logger.Info("audit completed", "url", target, "overall", report.Scores.Overall)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	bp.logger.Info("audits finished", "targets", len(targets), "elapsed", time.Since(start))
	return results, err
}
