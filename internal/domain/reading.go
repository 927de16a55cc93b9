package domain

// Accepted input bounds and the classification threshold.
const (
	MinReadings = 1
	MaxReadings = 10

	MinAirTemp  = 23.0
	MaxAirTemp  = 28.0
	MinDewPoint = 7.0
	MaxDewPoint = 16.0

	// HighRiskThreshold is the mean relative humidity (percent) that must be
	// exceeded for a batch to count as high risk.
	HighRiskThreshold = 70.0
)

// Reading is one validated air-temperature / dew-point pair.
type Reading struct {
	Index    int     // 1-based position in the request
	AirTemp  float64 // °C
	DewPoint float64 // °C
}

// HumidityResult is a reading together with its derived relative humidity.
type HumidityResult struct {
	Reading  int
	AirTemp  float64
	DewPoint float64
	Humidity float64 // percent, unclamped
}

// Risk is the rainfall-risk classification of a batch.
type Risk int

const (
	LowRisk Risk = iota
	HighRisk
)

// String returns the user-facing prediction text.
func (r Risk) String() string {
	if r == HighRisk {
		return "High chance of rainfall"
	}
	return "Low chance of rainfall"
}

// Label returns a short lowercase label suitable for metrics and headers.
func (r Risk) Label() string {
	if r == HighRisk {
		return "high"
	}
	return "low"
}

// PredictionOutcome is the result of evaluating one batch of readings.
type PredictionOutcome struct {
	Classification Risk
	MeanHumidity   float64
	Results        []HumidityResult // input order
	SortedResults  []HumidityResult // ascending by humidity, stable
	Highest        HumidityResult   // first reading with the maximum humidity
}
