package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawEvent represents an unprocessed prediction request read from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized prediction destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// SerializeResponse marshals a response into an OutputEvent keyed like the
// request it answers. Headers carry the prediction label and an RFC 3339
// predicted_at stamp.
func SerializeResponse(key []byte, outcome PredictionOutcome) (OutputEvent, error) {
	data, err := json.Marshal(NewResponse(outcome))
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize prediction: %w", err)
	}
	return OutputEvent{
		Key:   key,
		Value: data,
		Headers: map[string]string{
			"prediction":   outcome.Classification.Label(),
			"predicted_at": clock.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
