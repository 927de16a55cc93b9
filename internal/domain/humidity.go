package domain

import "math"

// Magnus coefficients (Alduchov & Eskridge, 1996).
const (
	magnusB = 17.625
	magnusC = 243.04 // °C
)

// RelativeHumidity derives relative humidity (percent) from air temperature
// and dew point in °C. The result is not clamped; callers are expected to pass
// validated readings.
func RelativeHumidity(airTemp, dewPoint float64) float64 {
	return 100 * math.Exp(magnusB*dewPoint/(magnusC+dewPoint)-magnusB*airTemp/(magnusC+airTemp))
}
