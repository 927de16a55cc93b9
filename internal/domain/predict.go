package domain

import (
	"cmp"
	"slices"
)

// Predict computes the humidity of every reading, classifies the batch by its
// mean humidity and ranks the results. It returns ErrEmptyInput for an empty
// batch and otherwise never fails; readings are assumed to be validated.
func Predict(readings []Reading) (PredictionOutcome, error) {
	if len(readings) == 0 {
		return PredictionOutcome{}, ErrEmptyInput
	}

	results := make([]HumidityResult, len(readings))
	var sum float64
	highest := 0
	for i, r := range readings {
		results[i] = HumidityResult{
			Reading:  r.Index,
			AirTemp:  r.AirTemp,
			DewPoint: r.DewPoint,
			Humidity: RelativeHumidity(r.AirTemp, r.DewPoint),
		}
		sum += results[i].Humidity
		// Strict comparison keeps the earliest reading on ties.
		if results[i].Humidity > results[highest].Humidity {
			highest = i
		}
	}
	mean := sum / float64(len(results))

	return PredictionOutcome{
		Classification: Classify(mean),
		MeanHumidity:   mean,
		Results:        results,
		SortedResults:  sortByHumidity(results),
		Highest:        results[highest],
	}, nil
}

// Classify maps a mean relative humidity to a risk. The threshold itself is low risk.
func Classify(meanHumidity float64) Risk {
	if meanHumidity > HighRiskThreshold {
		return HighRisk
	}
	return LowRisk
}

// sortByHumidity returns a copy of results ordered ascending by humidity.
// Equal humidities keep their input order.
func sortByHumidity(results []HumidityResult) []HumidityResult {
	sorted := slices.Clone(results)
	slices.SortStableFunc(sorted, func(a, b HumidityResult) int {
		return cmp.Compare(a.Humidity, b.Humidity)
	})
	return sorted
}
