package forecast_service

import (
	"math"
	"time"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// SeasonalSignalProvider yields one environmental factor per horizon day.
// The synthetic implementation below is the default; a real weather or
// seasonality feed slots in behind this interface without touching the
// generator.
type SeasonalSignalProvider interface {
	Signal(reference time.Time, horizonDays int) []models.SeasonalFactor
}

// Month lookup tables, January first. Temperatures in degrees C,
// precipitation as a base probability before the daily wobble.
var (
	monthTemperature   = [12]float64{8, 9, 13, 17, 22, 27, 31, 30, 26, 19, 13, 9}
	monthPrecipitation = [12]float64{0.45, 0.40, 0.35, 0.30, 0.22, 0.15, 0.10, 0.10, 0.18, 0.30, 0.40, 0.45}
)

// SyntheticSeasonalProvider is a closed-form stand-in for an external
// weather/seasonality source: a pure function of the reference date and
// horizon offset, so runs stay deterministic and replayable.
type SyntheticSeasonalProvider struct{}

// Signal returns factors for days reference+1 .. reference+horizonDays.
// Factor dates line up with the generator's target dates; the sin/cos
// wobbles are keyed to the 0-based horizon offset.
func (SyntheticSeasonalProvider) Signal(reference time.Time, horizonDays int) []models.SeasonalFactor {
	factors := make([]models.SeasonalFactor, 0, horizonDays)
	for offset := 0; offset < horizonDays; offset++ {
		date := reference.AddDate(0, 0, offset+1)
		month := int(date.Month()) // 1..12

		temp := monthTemperature[month-1] + math.Sin(float64(offset)/7)*2
		precip := monthPrecipitation[month-1] + math.Cos(float64(offset)/5)*0.05
		precip = clamp01(precip)

		// Smooth ±8% annual cycle keyed to the calendar month.
		index := 1 + math.Sin(float64(month)/12*2*math.Pi)*0.08

		factors = append(factors, models.SeasonalFactor{
			Date:                     date,
			TemperatureProxy:         temp,
			PrecipitationProbability: precip,
			SeasonalityIndex:         index,
		})
	}
	return factors
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
