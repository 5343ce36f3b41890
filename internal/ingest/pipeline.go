// Package ingest orchestrates batch loading of accident reports from CSV
// sources into the record store, with optional publishing of admitted
// records to a Kafka sink.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"roadrisk/internal/domain"
	"roadrisk/internal/observability"
	"roadrisk/internal/store"
)

// RawRow is one source row, keyed by normalized column name.
type RawRow struct {
	Line   int
	Fields map[string]string
}

// RowExtractor reads up to batchSize raw rows from the source. An empty
// batch with a nil error means the source is exhausted.
type RowExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]RawRow, error)
}

// Transformer converts a raw row into a record input.
type Transformer interface {
	Transform(ctx context.Context, row RawRow) (domain.RecordInput, error)
}

// Loader admits a batch of record inputs into the store.
type Loader interface {
	InsertMany(ctx context.Context, inputs []domain.RecordInput) (store.InsertResult, error)
}

// RecordSink publishes admitted records downstream. Publishing is
// best-effort; failures never roll back admission.
type RecordSink interface {
	PublishAdmitted(ctx context.Context, records []domain.Record) error
}

// Summary reports what one ingest run did.
type Summary struct {
	Rows      int
	Admitted  int
	Rejected  int
	Published int
}

// Pipeline orchestrates the extract-transform-load loop over a finite source.
type Pipeline struct {
	extractor   RowExtractor
	transformer Transformer
	loader      Loader
	sink        RecordSink
	logger      *slog.Logger
	metrics     *observability.Metrics
	batchSize   int
}

// New creates a Pipeline with the given stages and observability. Pass a nil
// sink to disable publishing.
func New(e RowExtractor, t Transformer, l Loader, sink RecordSink, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		sink:        sink,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// Run executes the batch loop until the source is exhausted or the context
// is cancelled, and returns a summary of everything processed.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	p.logger.Info("ingest started", "batch_size", p.batchSize)

	var sum Summary
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("ingest stopping", "reason", ctx.Err())
			return sum, ctx.Err()
		default:
		}

		batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if err != nil {
			return sum, fmt.Errorf("extract batch: %w", err)
		}
		if len(batch) == 0 {
			p.logger.Info("ingest complete",
				"rows", sum.Rows,
				"admitted", sum.Admitted,
				"rejected", sum.Rejected,
				"published", sum.Published,
			)
			return sum, nil
		}

		if err := p.processBatch(ctx, batch, &sum); err != nil {
			return sum, err
		}
	}
}

// processBatch runs one extract-transform-load cycle over an already
// extracted batch.
func (p *Pipeline) processBatch(ctx context.Context, batch []RawRow, sum *Summary) error {
	start := time.Now()

	sum.Rows += len(batch)
	p.metrics.IngestBatchSize.Observe(float64(len(batch)))

	inputs := make([]domain.RecordInput, 0, len(batch))
	lines := make([]int, 0, len(batch))

	for _, row := range batch {
		in, err := p.transformer.Transform(ctx, row)
		if err != nil {
			p.logger.Warn("transform failed, skipping row", "error", err, "line", row.Line)
			p.metrics.RecordsRejected.Inc()
			sum.Rejected++
			continue
		}
		inputs = append(inputs, in)
		lines = append(lines, row.Line)
	}

	if len(inputs) == 0 {
		return nil
	}

	result, err := p.loader.InsertMany(ctx, inputs)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for _, rej := range result.Rejected {
		p.logger.Warn("record rejected", "reason", rej.Reason, "line", lines[rej.Index])
	}
	p.metrics.RecordsAdmitted.Add(float64(len(result.Admitted)))
	p.metrics.RecordsRejected.Add(float64(len(result.Rejected)))
	sum.Admitted += len(result.Admitted)
	sum.Rejected += len(result.Rejected)

	p.publish(ctx, result.Admitted, sum)
	p.metrics.IngestBatchDuration.Observe(time.Since(start).Seconds())
	return nil
}

// publish sends admitted records to the sink, if one is configured.
func (p *Pipeline) publish(ctx context.Context, admitted []domain.Record, sum *Summary) {
	if p.sink == nil || len(admitted) == 0 {
		return
	}
	if err := p.sink.PublishAdmitted(ctx, admitted); err != nil {
		p.logger.Warn("sink publish failed", "error", err, "records", len(admitted))
		p.metrics.SinkErrors.Inc()
		return
	}
	p.metrics.SinkPublished.Add(float64(len(admitted)))
	sum.Published += len(admitted)
}
