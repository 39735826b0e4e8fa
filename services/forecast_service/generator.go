package forecast_service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// GenerateParams is everything one run needs to turn a fitted trend into a
// stored horizon. Factors must carry exactly HorizonDays entries whose
// dates are Reference+1 .. Reference+HorizonDays.
type GenerateParams struct {
	Metric      string
	ScopeID     *string
	Cohort      *models.CohortFilter
	CohortKey   string
	Reference   time.Time // run's "today"; targets start the day after
	HorizonDays int
	Baseline    float64
	Slope       float64
	Factors     []models.SeasonalFactor
	GeneratedAt time.Time

	// Mean historical revenue / mean historical orders over the loaded
	// window. Attached to average_order_value metadata as a sanity
	// reference only; never enters the forecast math.
	DerivedFromHistorical *float64
}

// Generate builds the full horizon of records for one run. Every record
// shares the run's GeneratedAt and CohortKey; horizon positions are exactly
// 1..HorizonDays with target dates advancing one calendar day per step.
func Generate(p GenerateParams) []models.ForecastRecord {
	records := make([]models.ForecastRecord, 0, p.HorizonDays)

	var cohortID, cohortLabel *string
	if p.Cohort != nil {
		cohortID = &p.Cohort.ID
		cohortLabel = &p.Cohort.Label
	}

	for i := 1; i <= p.HorizonDays; i++ {
		factor := p.Factors[i-1]

		trendValue := p.Baseline + p.Slope*float64(i)
		adjusted := trendValue * factor.SeasonalityIndex
		weatherPenalty := 1 - factor.PrecipitationProbability*0.1
		finalValue := adjusted * weatherPenalty

		// Order and revenue projections cannot go negative; a derived
		// average may, so it is left unclamped.
		if p.Metric != models.MetricAverageOrderValue && finalValue < 0 {
			finalValue = 0
		}

		// Band narrows one percentage point per horizon day, floored at 5%.
		confidence := 0.25 - 0.01*float64(i)
		if confidence < 0.05 {
			confidence = 0.05
		}
		lower := finalValue * (1 - confidence)
		if lower < 0 {
			lower = 0
		}
		upper := finalValue * (1 + confidence)

		metadata := datatypes.JSONMap{
			"baseline":       p.Baseline,
			"slope":          p.Slope,
			"weatherPenalty": weatherPenalty,
		}
		if p.Metric == models.MetricAverageOrderValue && p.DerivedFromHistorical != nil {
			metadata["derivedFromHistorical"] = *p.DerivedFromHistorical
		}

		seasonal := factor
		records = append(records, models.ForecastRecord{
			ID:                uuid.Must(uuid.NewV7()).String(),
			Metric:            p.Metric,
			TargetDate:        p.Reference.AddDate(0, 0, i),
			ScopeID:           p.ScopeID,
			CohortID:          cohortID,
			CohortLabel:       cohortLabel,
			CohortKey:         p.CohortKey,
			HorizonDays:       i,
			Value:             finalValue,
			LowerBound:        lower,
			UpperBound:        upper,
			SeasonalInfluence: &seasonal,
			Metadata:          metadata,
			GeneratedAt:       p.GeneratedAt,
		})
	}
	return records
}
