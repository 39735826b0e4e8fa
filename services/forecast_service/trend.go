package forecast_service

import "github.com/zeez-dotcom/laundryao-sub003/models"

// TrendEstimator derives a baseline level and per-day slope from a metric
// series. The series is sparse (one value per active day), so estimators
// see row positions, not calendar days.
type TrendEstimator func(values []float64) (baseline, slope float64)

// MetricSeries projects the loaded rows onto one metric's per-day values.
// average_order_value guards against zero-order days even though such days
// are normally absent from a sparse series.
func MetricSeries(metric string, rows []models.HistoricalMetricRow) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		switch metric {
		case models.MetricRevenue:
			values = append(values, row.RevenueTotal)
		case models.MetricAverageOrderValue:
			orders := row.OrderCount
			if orders < 1 {
				orders = 1
			}
			values = append(values, row.RevenueTotal/float64(orders))
		default: // orders
			values = append(values, float64(row.OrderCount))
		}
	}
	return values
}

// TwoPointTrend is the default estimator: baseline is the window mean,
// slope the endpoint difference spread over the row count. Sensitive to
// outliers at the window boundary; kept as the default for compatibility
// with stored history, with LeastSquaresTrend available as the alternative.
func TwoPointTrend(values []float64) (baseline, slope float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	baseline = mean(values)
	if n < 2 {
		return baseline, 0
	}
	slope = (values[n-1] - values[0]) / float64(n-1)
	return baseline, slope
}

// LeastSquaresTrend fits an ordinary least-squares line over row positions
// 0..n-1 and reports the window mean as baseline and the fitted slope.
func LeastSquaresTrend(values []float64) (baseline, slope float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	baseline = mean(values)
	if n < 2 {
		return baseline, 0
	}

	xMean := float64(n-1) / 2
	var num, den float64
	for i, v := range values {
		dx := float64(i) - xMean
		num += dx * (v - baseline)
		den += dx * dx
	}
	if den == 0 {
		return baseline, 0
	}
	return baseline, num / den
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
