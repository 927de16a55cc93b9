package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	t.Run("mixed strings and numbers", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"readings":[{"air":"25","dew":12},{"air":26,"dew":"14"}]}`))
		require.NoError(t, err)
		require.Len(t, req.Readings, 2)
		assert.True(t, req.Count.IsZero())
		assert.Equal(t, "25", req.Readings[0].Air.String())
		assert.Equal(t, "14", req.Readings[1].Dew.String())
	})

	t.Run("declared count", func(t *testing.T) {
		req, err := ParseRequest([]byte(`{"count":"1","readings":[{"air":25,"dew":12}]}`))
		require.NoError(t, err)
		assert.False(t, req.Count.IsZero())
		assert.Equal(t, "1", req.Count.String())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRequest([]byte(`{"readings":`))
		require.ErrorIs(t, err, ErrMalformedRequest)
		assert.Equal(t, "malformed_request", ErrorKind(err))
	})

	t.Run("readings not an array", func(t *testing.T) {
		_, err := ParseRequest([]byte(`{"readings":"25,12"}`))
		require.ErrorIs(t, err, ErrMalformedRequest)
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("empty readings", func(t *testing.T) {
		_, err := Evaluate(Request{})
		require.ErrorIs(t, err, ErrEmptyInput)
		assert.Contains(t, err.Error(), "no readings provided")
	})

	t.Run("explicit zero count", func(t *testing.T) {
		_, err := Evaluate(Request{Count: Number(0)})
		require.ErrorIs(t, err, ErrCountOutOfRange)
	})

	t.Run("rejection is all or nothing", func(t *testing.T) {
		outcome, err := Evaluate(Request{Readings: []RawReading{pair("25", "12"), pair("29", "12")}})
		require.ErrorIs(t, err, ErrRangeViolation)
		assert.Empty(t, outcome.Results)
	})

	t.Run("valid request", func(t *testing.T) {
		outcome, err := Evaluate(Request{Readings: []RawReading{pair("25", "12"), pair("26", "14")}})
		require.NoError(t, err)
		assert.Len(t, outcome.Results, 2)
		assert.Equal(t, LowRisk, outcome.Classification)
	})
}

func TestNewResponse_WireFormat(t *testing.T) {
	outcome, err := Predict(readings([2]float64{26, 14}, [2]float64{25, 12}))
	require.NoError(t, err)

	data, err := json.Marshal(NewResponse(outcome))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))

	assert.Equal(t, "Low chance of rainfall", body["prediction"])
	assert.Contains(t, body, "mean_relative_humidity")

	sorted, ok := body["sorted_results"].([]any)
	require.True(t, ok)
	require.Len(t, sorted, 2)
	lowest := sorted[0].(map[string]any)
	assert.Equal(t, 25.0, lowest["air_temp"])
	assert.Equal(t, 12.0, lowest["dew_point"])
	assert.Equal(t, 2.0, lowest["reading"])
	assert.InDelta(t, RelativeHumidity(25, 12), lowest["relative_humidity"], 1e-12)

	highest := body["highest"].(map[string]any)
	assert.Equal(t, 26.0, highest["air_temp"])

	results := body["results"].([]any)
	assert.Equal(t, 1.0, results[0].(map[string]any)["reading"])
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(ErrEmptyInput))
	assert.True(t, IsInputError(&ValidationError{Kind: ErrMissingField}))
	assert.False(t, IsInputError(assert.AnError))
	assert.Equal(t, "unknown", ErrorKind(assert.AnError))
}

func TestSerializeResponse(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	outcome, err := Predict(readings([2]float64{25, 12}))
	require.NoError(t, err)

	out, err := SerializeResponse([]byte("req-1"), outcome)
	require.NoError(t, err)

	assert.Equal(t, []byte("req-1"), out.Key)
	assert.Equal(t, "low", out.Headers["prediction"])
	assert.Equal(t, "2025-06-01T14:30:00Z", out.Headers["predicted_at"])

	var resp Response
	require.NoError(t, json.Unmarshal(out.Value, &resp))
	assert.Equal(t, NewResponse(outcome), resp)
}
