package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/raincast-service/internal/domain"
	"github.com/couchcryptid/raincast-service/internal/observability"
)

// PredictionService evaluates prediction requests and records their outcome.
// It holds no per-request state and is safe for concurrent use.
type PredictionService struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPredictionService creates a PredictionService.
func NewPredictionService(logger *slog.Logger, metrics *observability.Metrics) *PredictionService {
	return &PredictionService{logger: logger, metrics: metrics}
}

// Evaluate decodes a JSON request and predicts rainfall risk for it.
func (s *PredictionService) Evaluate(ctx context.Context, payload []byte) (domain.PredictionOutcome, error) {
	req, err := domain.ParseRequest(payload)
	if err != nil {
		s.reject(ctx, err)
		return domain.PredictionOutcome{}, err
	}
	return s.Predict(ctx, req)
}

// Predict validates a decoded request and predicts rainfall risk for it.
func (s *PredictionService) Predict(ctx context.Context, req domain.Request) (domain.PredictionOutcome, error) {
	outcome, err := domain.Evaluate(req)
	if err != nil {
		s.reject(ctx, err)
		return domain.PredictionOutcome{}, err
	}

	s.metrics.Predictions.WithLabelValues(outcome.Classification.Label()).Inc()
	s.metrics.ReadingsPerRequest.Observe(float64(len(outcome.Results)))
	for _, r := range outcome.Results {
		s.metrics.RelativeHumidity.Observe(r.Humidity)
	}

	s.logger.DebugContext(ctx, "prediction computed",
		"readings", len(outcome.Results),
		"mean_humidity", outcome.MeanHumidity,
		"prediction", outcome.Classification.Label(),
	)
	return outcome, nil
}

// CheckReadiness always succeeds: predictions need no external dependency.
func (s *PredictionService) CheckReadiness(_ context.Context) error {
	return nil
}

func (s *PredictionService) reject(ctx context.Context, err error) {
	kind := domain.ErrorKind(err)
	s.metrics.Rejections.WithLabelValues(kind).Inc()
	s.logger.DebugContext(ctx, "prediction request rejected", "kind", kind, "error", err)
}
