// Package domain turns a small batch of air-temperature / dew-point readings
// into a rainfall-risk prediction.
//
// # Inputs
//
// A prediction request carries between 1 and 10 readings. Each reading pairs
// an air temperature and a dew point, both in degrees Celsius, supplied either
// as JSON numbers or as numeric strings (the browser form posts strings):
//
//	{"readings": [{"air": "25", "dew": 12}, {"air": 26, "dew": "14"}]}
//
// Accepted ranges:
//
//	air temperature: 23–28 °C (inclusive)
//	dew point:        7–16 °C (inclusive)
//
// Validation stops at the first problem found, scanning the count first and
// then each reading in order. See [Validate].
//
// # Relative Humidity
//
// Relative humidity is derived with the Magnus approximation using the
// Alduchov & Eskridge coefficients (b = 17.625, c = 243.04 °C):
//
//	RH = 100 * exp( b*Td/(c+Td) − b*T/(c+T) )
//
// The value is returned as computed and is never clamped to [0, 100].
// See [RelativeHumidity].
//
// # Classification
//
// The batch is classified by its mean relative humidity: strictly above 70%
// is a high chance of rainfall, anything else (70% included) is low.
// Results are also returned sorted ascending by humidity with a stable sort,
// and the highest-humidity reading is the first one to reach the maximum.
// See [Predict].
//
// Every function in this package is pure apart from the clock used to stamp
// serialized pipeline output (see [SetClock]).
package domain
