package forecast_service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// HistoryLoader aggregates raw ledger orders into one row per active day
// over the half-open window [start, end), ascending by date. Days with no
// matching orders are absent, not zero-filled.
type HistoryLoader interface {
	Load(ctx context.Context, metric string, scopeID *string, cohort *models.CohortFilter, start, end time.Time) ([]models.HistoricalMetricRow, error)
}

// LedgerHistoryLoader aggregates the order ledger through GORM. Store
// errors propagate to the caller untouched; this layer performs no retry.
type LedgerHistoryLoader struct {
	db *gorm.DB
}

func NewLedgerHistoryLoader(db *gorm.DB) *LedgerHistoryLoader {
	return &LedgerHistoryLoader{db: db}
}

// Load groups orders by calendar day in the database's reference time zone.
// Voided and failed orders are excluded by the shared ledger rule; the
// cohort predicate narrows the aggregate further when present.
func (l *LedgerHistoryLoader) Load(ctx context.Context, metric string, scopeID *string, cohort *models.CohortFilter, start, end time.Time) ([]models.HistoricalMetricRow, error) {
	q := l.db.WithContext(ctx).
		Table("orders").
		Select(`date_trunc('day', created_at) AS date,
			COUNT(*)::int AS order_count,
			COALESCE(SUM(total_amount), 0)::float8 AS revenue_total`).
		Where("created_at >= ? AND created_at < ?", start, end).
		Where("status NOT IN ?", models.VoidedOrderStatuses)

	if scopeID != nil && *scopeID != "" {
		q = q.Where("branch_id = ?", *scopeID)
	}

	if cohort != nil {
		if _, pred := ResolveCohort(cohort.ID); pred != nil {
			clause, args := pred(end)
			q = q.Where(clause, args...)
		}
	}

	var rows []models.HistoricalMetricRow
	if err := q.
		Group("date_trunc('day', created_at)").
		Order("date ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
