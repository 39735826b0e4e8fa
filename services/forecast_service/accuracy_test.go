package forecast_service

import (
	"math"
	"testing"
	"time"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

func TestEvaluateAccuracy_KnownScenario(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	actuals := []models.HistoricalMetricRow{
		{Date: day, OrderCount: 0},
		{Date: day.AddDate(0, 0, 1), OrderCount: 10},
		{Date: day.AddDate(0, 0, 2), OrderCount: 20},
	}
	forecasts := []models.ForecastRecord{
		{Metric: models.MetricOrders, TargetDate: day, Value: 5},
		{Metric: models.MetricOrders, TargetDate: day.AddDate(0, 0, 1), Value: 8},
		{Metric: models.MetricOrders, TargetDate: day.AddDate(0, 0, 2), Value: 25},
	}

	result := EvaluateAccuracy(models.MetricOrders, forecasts, actuals)

	if result.SampleSize != 3 {
		t.Fatalf("sample size = %d, want 3", result.SampleSize)
	}
	// MAE = (5 + 2 + 5) / 3; the zero-actual day contributes 0 to MAPE
	// rather than being excluded or dividing by zero.
	if math.Abs(result.MeanAbsoluteError-4.0) > 1e-12 {
		t.Errorf("MAE = %v, want 4.0", result.MeanAbsoluteError)
	}
	wantMAPE := (0 + 0.2 + 0.25) / 3
	if math.Abs(result.MeanAbsolutePercentageError-wantMAPE) > 1e-12 {
		t.Errorf("MAPE = %v, want %v", result.MeanAbsolutePercentageError, wantMAPE)
	}
}

func TestEvaluateAccuracy_NoOverlap(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	forecasts := []models.ForecastRecord{
		{Metric: models.MetricRevenue, TargetDate: day, Value: 100},
	}
	actuals := []models.HistoricalMetricRow{
		{Date: day.AddDate(0, 0, 7), RevenueTotal: 90},
	}

	result := EvaluateAccuracy(models.MetricRevenue, forecasts, actuals)
	if result.SampleSize != 0 || result.MeanAbsoluteError != 0 || result.MeanAbsolutePercentageError != 0 {
		t.Errorf("no-overlap result = %+v, want all zeros", result)
	}
}

func TestEvaluateAccuracy_JoinsByExactDay(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Timestamps inside the same calendar day still join.
	forecasts := []models.ForecastRecord{
		{Metric: models.MetricRevenue, TargetDate: day, Value: 110},
	}
	actuals := []models.HistoricalMetricRow{
		{Date: day.Add(13 * time.Hour), RevenueTotal: 100},
	}

	result := EvaluateAccuracy(models.MetricRevenue, forecasts, actuals)
	if result.SampleSize != 1 {
		t.Fatalf("sample size = %d, want 1", result.SampleSize)
	}
	if math.Abs(result.MeanAbsoluteError-10) > 1e-12 {
		t.Errorf("MAE = %v, want 10", result.MeanAbsoluteError)
	}
}
