package forecast_service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// Default window sizes when a trigger request leaves them out.
const (
	DefaultHistoryDays = 90
	DefaultHorizonDays = 30
)

// Engine runs the forecasting pipeline: load history, fit the trend, apply
// the seasonal signal, persist the horizon. All collaborators are injected
// at construction so runs are deterministic under test; there is no module
// global state.
//
// Runs for different keys may execute concurrently. Runs for the SAME
// (metric, scope, cohortKey) must be serialized by the caller, e.g. through
// a RunLocker: Replace is delete-then-insert and two interleaved runs can
// corrupt the key's record set.
type Engine struct {
	store     ForecastStore
	loader    HistoryLoader
	seasonal  SeasonalSignalProvider
	estimator TrendEstimator
	now       func() time.Time
}

// EngineOptions configures a new Engine. Store and Loader are required;
// the rest default to the synthetic seasonal provider, the two-point trend
// estimator, and the UTC wall clock.
type EngineOptions struct {
	Store     ForecastStore
	Loader    HistoryLoader
	Seasonal  SeasonalSignalProvider
	Estimator TrendEstimator
	Now       func() time.Time
}

func NewEngine(opts EngineOptions) (*Engine, error) {
	if opts.Store == nil || opts.Loader == nil {
		return nil, fmt.Errorf("forecast engine requires a store and a history loader")
	}
	e := &Engine{
		store:     opts.Store,
		loader:    opts.Loader,
		seasonal:  opts.Seasonal,
		estimator: opts.Estimator,
		now:       opts.Now,
	}
	if e.seasonal == nil {
		e.seasonal = SyntheticSeasonalProvider{}
	}
	if e.estimator == nil {
		e.estimator = TwoPointTrend
	}
	if e.now == nil {
		e.now = func() time.Time { return time.Now().UTC() }
	}
	return e, nil
}

// RunParams identifies one forecast run. Zero window sizes fall back to the
// defaults; an empty CohortID means the unfiltered aggregate.
type RunParams struct {
	Metric      string
	ScopeID     *string
	CohortID    string
	HistoryDays int
	HorizonDays int
}

// Run executes the full pipeline for one key and replaces the key's stored
// horizon. Empty history is not an error: baseline and slope default to
// zero and the run still replaces the key. Store failures propagate with
// the prior records left untouched.
func (e *Engine) Run(ctx context.Context, p RunParams) ([]models.ForecastRecord, error) {
	if !models.ValidMetric(p.Metric) {
		return nil, fmt.Errorf("unknown forecast metric %q", p.Metric)
	}
	if p.HistoryDays <= 0 {
		p.HistoryDays = DefaultHistoryDays
	}
	if p.HorizonDays <= 0 {
		p.HorizonDays = DefaultHorizonDays
	}

	cohort, _ := ResolveCohort(p.CohortID)
	cohortKey := CohortKey(cohort)

	now := e.now()
	today := dayOf(now)
	start := today.AddDate(0, 0, -p.HistoryDays)

	rows, err := e.loader.Load(ctx, p.Metric, p.ScopeID, cohort, start, today)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	baseline, slope := e.estimator(MetricSeries(p.Metric, rows))
	factors := e.seasonal.Signal(today, p.HorizonDays)

	records := Generate(GenerateParams{
		Metric:                p.Metric,
		ScopeID:               p.ScopeID,
		Cohort:                cohort,
		CohortKey:             cohortKey,
		Reference:             today,
		HorizonDays:           p.HorizonDays,
		Baseline:              baseline,
		Slope:                 slope,
		Factors:               factors,
		GeneratedAt:           now,
		DerivedFromHistorical: historicalAverageOrderValue(p.Metric, rows),
	})

	if err := e.store.Replace(ctx, records); err != nil {
		return nil, fmt.Errorf("replace forecasts: %w", err)
	}

	log.Printf("[forecast.run] metric=%s key=%s history_rows=%d horizon=%d baseline=%.4f slope=%.4f",
		p.Metric, cohortKey, len(rows), p.HorizonDays, baseline, slope)
	return records, nil
}

// List returns the stored horizon for a key, optionally bounded [start, end).
func (e *Engine) List(ctx context.Context, metric string, scopeID *string, cohortID string, start, end *time.Time) ([]models.ForecastRecord, error) {
	if !models.ValidMetric(metric) {
		return nil, fmt.Errorf("unknown forecast metric %q", metric)
	}
	cohort, _ := ResolveCohort(cohortID)
	return e.store.List(ctx, metric, scopeID, CohortKey(cohort), start, end)
}

// Accuracy grades the key's stored forecasts against realized actuals over
// the trailing compareWindowDays ending today.
func (e *Engine) Accuracy(ctx context.Context, metric string, scopeID *string, cohortID string, compareWindowDays int) (models.AccuracyResult, error) {
	if !models.ValidMetric(metric) {
		return models.AccuracyResult{}, fmt.Errorf("unknown forecast metric %q", metric)
	}
	if compareWindowDays <= 0 {
		compareWindowDays = DefaultHorizonDays
	}

	cohort, _ := ResolveCohort(cohortID)
	end := dayOf(e.now())
	start := end.AddDate(0, 0, -compareWindowDays)

	forecasts, err := e.store.List(ctx, metric, scopeID, CohortKey(cohort), &start, &end)
	if err != nil {
		return models.AccuracyResult{}, fmt.Errorf("list forecasts: %w", err)
	}
	actuals, err := e.store.LoadActuals(ctx, metric, scopeID, cohort, start, end)
	if err != nil {
		return models.AccuracyResult{}, fmt.Errorf("load actuals: %w", err)
	}
	return EvaluateAccuracy(metric, forecasts, actuals), nil
}

// RunKey is the serialization key callers must hold a lock on before
// triggering concurrent runs.
func RunKey(metric string, scopeID *string, cohortKey string) string {
	scope := ""
	if scopeID != nil {
		scope = *scopeID
	}
	return metric + "|" + scope + "|" + cohortKey
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// historicalAverageOrderValue is the sanity reference attached to
// average_order_value runs: mean window revenue over mean window orders,
// independent of the trend projection.
func historicalAverageOrderValue(metric string, rows []models.HistoricalMetricRow) *float64 {
	if metric != models.MetricAverageOrderValue || len(rows) == 0 {
		return nil
	}
	var orders, revenue float64
	for _, row := range rows {
		orders += float64(row.OrderCount)
		revenue += row.RevenueTotal
	}
	if orders == 0 {
		return nil
	}
	meanOrders := orders / float64(len(rows))
	meanRevenue := revenue / float64(len(rows))
	v := meanRevenue / meanOrders
	return &v
}
