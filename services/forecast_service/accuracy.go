package forecast_service

import (
	"math"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// metricActual projects one aggregated ledger day onto the graded metric.
func metricActual(metric string, row models.HistoricalMetricRow) float64 {
	switch metric {
	case models.MetricRevenue:
		return row.RevenueTotal
	case models.MetricAverageOrderValue:
		orders := row.OrderCount
		if orders < 1 {
			orders = 1
		}
		return row.RevenueTotal / float64(orders)
	default:
		return float64(row.OrderCount)
	}
}

// EvaluateAccuracy joins stored forecasts against realized actuals by exact
// target day and averages absolute and absolute-percentage errors over the
// matches. Days where the actual is zero contribute zero to the percentage
// average instead of being dropped or dividing by zero. No overlap is not
// an error: the result is simply zero-valued with SampleSize 0.
func EvaluateAccuracy(metric string, forecasts []models.ForecastRecord, actuals []models.HistoricalMetricRow) models.AccuracyResult {
	actualByDay := make(map[string]float64, len(actuals))
	for _, row := range actuals {
		actualByDay[dayKey(row.Date)] = metricActual(metric, row)
	}

	var absSum, pctSum float64
	matched := 0
	for _, f := range forecasts {
		actual, ok := actualByDay[dayKey(f.TargetDate)]
		if !ok {
			continue
		}
		matched++
		err := math.Abs(actual - f.Value)
		absSum += err
		if actual != 0 {
			pctSum += math.Abs(err / actual)
		}
	}

	if matched == 0 {
		return models.AccuracyResult{}
	}
	return models.AccuracyResult{
		MeanAbsoluteError:           absSum / float64(matched),
		MeanAbsolutePercentageError: pctSum / float64(matched),
		SampleSize:                  matched,
	}
}
