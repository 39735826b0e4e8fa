package models

import (
	"time"

	"gorm.io/datatypes"
)

// Forecastable metrics. average_order_value is derived (revenue / orders)
// and is the only metric that may legitimately go negative after trend
// extrapolation, so it is never clamped.
const (
	MetricOrders            = "orders"
	MetricRevenue           = "revenue"
	MetricAverageOrderValue = "average_order_value"
)

// ValidMetric reports whether m is one of the forecastable metrics.
func ValidMetric(m string) bool {
	return m == MetricOrders || m == MetricRevenue || m == MetricAverageOrderValue
}

// CohortFilter identifies a named customer/order segment.
// Label is display-only: storage partitioning keys off the ID alone, so a
// cosmetic rename never orphans previously stored forecasts.
type CohortFilter struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
}

// HistoricalMetricRow is one aggregated ledger day. Days with no activity
// are absent from the series entirely, so consumers must not assume
// contiguous dates.
type HistoricalMetricRow struct {
	Date         time.Time `json:"date"`
	OrderCount   int       `json:"order_count"`
	RevenueTotal float64   `json:"revenue_total"`
}

// SeasonalFactor is the per-day environmental signal attached to a forecast.
// It has no persisted identity of its own.
type SeasonalFactor struct {
	Date                     time.Time `json:"date"`
	TemperatureProxy         float64   `json:"temperature_proxy"`         // degrees C, month table + daily wobble
	PrecipitationProbability float64   `json:"precipitation_probability"` // 0..1
	SeasonalityIndex         float64   `json:"seasonality_index"`         // multiplicative, centered near 1.0
}

// ForecastRecord is one projected day of one forecast run.
// At most one row exists per (metric, scope_id, cohort_key, target_date);
// a new run fully replaces the prior run's rows for its key.
type ForecastRecord struct {
	ID                string            `json:"id" gorm:"primaryKey;type:uuid"`
	Metric            string            `json:"metric" gorm:"index:idx_forecast_key;not null"`
	TargetDate        time.Time         `json:"target_date" gorm:"type:date;index:idx_forecast_key;not null"`
	ScopeID           *string           `json:"scope_id,omitempty" gorm:"index:idx_forecast_key"` // branch; nil = all branches
	CohortID          *string           `json:"cohort_id,omitempty"`
	CohortLabel       *string           `json:"cohort_label,omitempty"`
	CohortKey         string            `json:"cohort_key" gorm:"index:idx_forecast_key;not null"`
	HorizonDays       int               `json:"horizon_days"` // 1-based position within the run
	Value             float64           `json:"value"`
	LowerBound        float64           `json:"lower_bound"`
	UpperBound        float64           `json:"upper_bound"`
	SeasonalInfluence *SeasonalFactor   `json:"seasonal_influence,omitempty" gorm:"serializer:json;type:jsonb"`
	Metadata          datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

// TableName keeps the table name stable regardless of gorm pluralization.
func (ForecastRecord) TableName() string {
	return "forecast_records"
}

// AccuracyResult grades previously stored forecasts against realized
// actuals. Derived on demand, never persisted.
type AccuracyResult struct {
	MeanAbsoluteError           float64 `json:"mean_absolute_error"`
	MeanAbsolutePercentageError float64 `json:"mean_absolute_percentage_error"`
	SampleSize                  int     `json:"sample_size"`
}
