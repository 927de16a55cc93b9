package domain

import (
	"encoding/json"
	"fmt"
)

// Request is the prediction request accepted over HTTP and Kafka.
type Request struct {
	// Count optionally declares how many readings follow, as entered on the form.
	Count    RawValue     `json:"count,omitzero"`
	Readings []RawReading `json:"readings"`
}

// ResultView is the serialized form of a HumidityResult.
type ResultView struct {
	Reading          int     `json:"reading"`
	AirTemp          float64 `json:"air_temp"`
	DewPoint         float64 `json:"dew_point"`
	RelativeHumidity float64 `json:"relative_humidity"`
}

// Response is the serialized form of a PredictionOutcome.
type Response struct {
	Prediction           string       `json:"prediction"`
	SortedResults        []ResultView `json:"sorted_results"`
	Highest              ResultView   `json:"highest"`
	Results              []ResultView `json:"results"`
	MeanRelativeHumidity float64      `json:"mean_relative_humidity"`
}

// ErrorResponse is returned in place of a Response when a request is rejected.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ParseRequest decodes a JSON prediction request.
func ParseRequest(data []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrMalformedRequest, err)
	}
	return req, nil
}

// Evaluate validates a request and runs the prediction. A request with no
// readings and no declared count fails with ErrEmptyInput; every other
// rejection comes from Validate.
func Evaluate(req Request) (PredictionOutcome, error) {
	if req.Count.IsZero() && len(req.Readings) == 0 {
		return PredictionOutcome{}, fmt.Errorf("no readings provided: %w", ErrEmptyInput)
	}

	readings, err := Validate(req.Count, req.Readings)
	if err != nil {
		return PredictionOutcome{}, err
	}
	return Predict(readings)
}

// NewResponse renders an outcome in its wire form.
func NewResponse(o PredictionOutcome) Response {
	return Response{
		Prediction:           o.Classification.String(),
		SortedResults:        toViews(o.SortedResults),
		Highest:              toView(o.Highest),
		Results:              toViews(o.Results),
		MeanRelativeHumidity: o.MeanHumidity,
	}
}

func toView(r HumidityResult) ResultView {
	return ResultView{
		Reading:          r.Reading,
		AirTemp:          r.AirTemp,
		DewPoint:         r.DewPoint,
		RelativeHumidity: r.Humidity,
	}
}

func toViews(results []HumidityResult) []ResultView {
	views := make([]ResultView, len(results))
	for i, r := range results {
		views[i] = toView(r)
	}
	return views
}
