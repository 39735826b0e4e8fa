package forecast_service

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// ErrEmptyRun is returned when Replace is handed a batch with no records;
// the run key cannot be derived from nothing and an empty replace would
// silently wipe a partition.
var ErrEmptyRun = errors.New("forecast run contains no records")

// ForecastStore persists forecast runs partitioned by
// (metric, scope_id, cohort_key). Replace is full-replace-per-run: the new
// batch supersedes every previously stored record for its key, even outside
// the new horizon's date range. Callers must serialize runs per key (see
// RunLocker); the store itself takes no locks.
type ForecastStore interface {
	Replace(ctx context.Context, records []models.ForecastRecord) error
	List(ctx context.Context, metric string, scopeID *string, cohortKey string, start, end *time.Time) ([]models.ForecastRecord, error)
	LoadActuals(ctx context.Context, metric string, scopeID *string, cohort *models.CohortFilter, start, end time.Time) ([]models.HistoricalMetricRow, error)
}

// GormForecastStore keeps forecast_records in the same Postgres database
// the ledger lives in. The table is ensured lazily on first use, so no
// external migration tooling has to run before the first forecast.
type GormForecastStore struct {
	db     *gorm.DB
	loader HistoryLoader

	ensureOnce sync.Once
	ensureErr  error
}

func NewGormForecastStore(db *gorm.DB, loader HistoryLoader) *GormForecastStore {
	return &GormForecastStore{db: db, loader: loader}
}

func (s *GormForecastStore) ensure() error {
	s.ensureOnce.Do(func() {
		s.ensureErr = s.db.AutoMigrate(&models.ForecastRecord{})
	})
	return s.ensureErr
}

// Replace deletes the key's prior records and inserts the new batch inside
// one transaction, so a failure leaves the previous run intact rather than
// an emptied partition.
func (s *GormForecastStore) Replace(ctx context.Context, records []models.ForecastRecord) error {
	if len(records) == 0 {
		return ErrEmptyRun
	}
	if err := s.ensure(); err != nil {
		return err
	}

	key := records[0]
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("metric = ? AND scope_id IS NOT DISTINCT FROM ? AND cohort_key = ?",
				key.Metric, key.ScopeID, key.CohortKey).
			Delete(&models.ForecastRecord{}).Error; err != nil {
			return err
		}
		return tx.Create(&records).Error
	})
}

// List returns the key's stored records ascending by target date, bounded
// by [start, end) when either bound is present.
func (s *GormForecastStore) List(ctx context.Context, metric string, scopeID *string, cohortKey string, start, end *time.Time) ([]models.ForecastRecord, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).
		Where("metric = ? AND scope_id IS NOT DISTINCT FROM ? AND cohort_key = ?",
			metric, scopeID, cohortKey)
	if start != nil {
		q = q.Where("target_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("target_date < ?", *end)
	}

	var records []models.ForecastRecord
	if err := q.Order("target_date ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// LoadActuals delegates to the ledger aggregation so grading applies
// exactly the same exclusion and grouping rules the run itself used.
func (s *GormForecastStore) LoadActuals(ctx context.Context, metric string, scopeID *string, cohort *models.CohortFilter, start, end time.Time) ([]models.HistoricalMetricRow, error) {
	return s.loader.Load(ctx, metric, scopeID, cohort, start, end)
}
