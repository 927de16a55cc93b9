package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/raincast-service/internal/domain"
	"github.com/couchcryptid/raincast-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer converts a raw prediction request into a serialized prediction.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes multiple output events to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline consumes prediction requests in batches, evaluates them, and
// publishes the predictions.
//
// A batch is settled as a unit: its offsets are committed only after every
// accepted request in it has been published. Rejected requests are never
// retried, but their offsets wait for the rest of the batch so a commit never
// skips past an unpublished prediction.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	running     atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil while the consume loop is running.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.running.Load() {
		return errors.New("pipeline is not running")
	}
	return nil
}

// Run consumes, evaluates and publishes batches until the context is
// cancelled. Extract and publish failures back off exponentially from 200ms
// to 5s; a failed publish is retried with the same batch.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.running.Store(true)
	p.metrics.PipelineRunning.Set(1)
	defer func() {
		p.running.Store(false)
		p.metrics.PipelineRunning.Set(0)
	}()

	retry := backoff{delay: initialBackoff}
	for ctx.Err() == nil {
		start := time.Now()

		raws, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			p.logger.Error("extract batch failed", "error", err)
			if !retry.wait(ctx) {
				break
			}
			continue
		}
		retry.reset()
		if len(raws) == 0 {
			continue
		}

		p.metrics.MessagesConsumed.Add(float64(len(raws)))
		p.metrics.BatchSize.Observe(float64(len(raws)))

		out := p.evaluate(ctx, raws)
		if !p.publish(ctx, out, &retry) {
			break
		}
		p.commit(ctx, raws)

		if len(out) > 0 {
			p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		}
	}

	p.logger.Info("pipeline stopping", "reason", ctx.Err())
	return nil
}

// evaluate runs every request in the batch through the transformer, keeping
// the accepted ones in order. Rejections are logged and dropped.
func (p *Pipeline) evaluate(ctx context.Context, raws []domain.RawEvent) []domain.OutputEvent {
	out := make([]domain.OutputEvent, 0, len(raws))
	for _, raw := range raws {
		event, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("prediction request rejected, skipping message",
				"error", err,
				"kind", domain.ErrorKind(err),
				"key", string(raw.Key),
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			continue
		}
		out = append(out, event)
	}
	return out
}

// publish loads the predictions, retrying the same batch until it succeeds.
// It returns false only when ctx is cancelled first.
func (p *Pipeline) publish(ctx context.Context, out []domain.OutputEvent, retry *backoff) bool {
	if len(out) == 0 {
		return true
	}
	for attempt := 1; ; attempt++ {
		err := p.loader.LoadBatch(ctx, out)
		if err == nil {
			p.metrics.MessagesProduced.Add(float64(len(out)))
			retry.reset()
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.metrics.PublishRetries.Inc()
		p.logger.Error("publish predictions failed, retrying batch",
			"error", err,
			"batch_size", len(out),
			"attempt", attempt,
			"retry_in", retry.delay,
		)
		if !retry.wait(ctx) {
			return false
		}
	}
}

// commit acknowledges every message of a settled batch in offset order.
func (p *Pipeline) commit(ctx context.Context, raws []domain.RawEvent) {
	for _, raw := range raws {
		if raw.Commit == nil {
			continue
		}
		if err := raw.Commit(ctx); err != nil {
			p.logger.Warn("commit offset failed", "error", err,
				"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
		}
	}
}

// backoff doubles its delay after every wait, up to maxBackoff.
type backoff struct {
	delay time.Duration
}

func (b *backoff) reset() { b.delay = initialBackoff }

// wait sleeps for the current delay and then advances it. It returns false
// if ctx is cancelled first.
func (b *backoff) wait(ctx context.Context) bool {
	timer := time.NewTimer(b.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}
	b.delay = min(b.delay*2, maxBackoff)
	return true
}
