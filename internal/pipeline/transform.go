package pipeline

import (
	"context"

	"github.com/couchcryptid/raincast-service/internal/domain"
)

// PredictionTransformer implements Transformer by evaluating each raw event
// as a prediction request.
type PredictionTransformer struct {
	service *PredictionService
}

// NewTransformer creates a PredictionTransformer backed by service.
func NewTransformer(service *PredictionService) *PredictionTransformer {
	return &PredictionTransformer{service: service}
}

func (t *PredictionTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	outcome, err := t.service.Evaluate(ctx, raw.Value)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	return domain.SerializeResponse(raw.Key, outcome)
}
