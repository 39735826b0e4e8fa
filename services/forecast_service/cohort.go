package forecast_service

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

// CohortKeyNone is the storage partition key used when a run has no cohort.
const CohortKeyNone = "all"

// Order total at or above which an order counts as high value.
const highValueThreshold = 500.0

// Window used by the newCustomers cohort. The ledger does not expose
// account creation dates to this service, so "new" is approximated as
// orders placed within the trailing window.
const newCustomerWindowDays = 30

// CohortPredicate builds a SQL fragment restricting the ledger aggregation
// to one cohort. ref is the run's reference day so the same run always
// produces the same window. A nil predicate means no filtering.
type CohortPredicate func(ref time.Time) (clause string, args []any)

// ResolveCohort maps a cohort id to its filter and ledger predicate.
// "all", the empty id, and any unrecognized id all resolve to no filter;
// unknown ids are deliberately not an error (documented behavior, callers
// get the unfiltered aggregate).
func ResolveCohort(id string) (*models.CohortFilter, CohortPredicate) {
	switch id {
	case "highValue":
		return &models.CohortFilter{ID: "highValue", Label: "High value orders"},
			func(time.Time) (string, []any) {
				return "total_amount >= ?", []any{highValueThreshold}
			}
	case "recurring":
		return &models.CohortFilter{ID: "recurring", Label: "Package credit customers"},
			func(time.Time) (string, []any) {
				return "package_credit_used = ?", []any{true}
			}
	case "newCustomers":
		return &models.CohortFilter{ID: "newCustomers", Label: "New customers"},
			func(ref time.Time) (string, []any) {
				return "created_at >= ?", []any{ref.AddDate(0, 0, -newCustomerWindowDays)}
			}
	case "", "all":
		return nil, nil
	default:
		return nil, nil
	}
}

// CohortKey derives the stable storage partition key for a cohort. Only the
// id participates in the hash: the label is display metadata and renaming
// it must not strand previously stored forecasts under a dead key.
func CohortKey(cohort *models.CohortFilter) string {
	if cohort == nil || cohort.ID == "" || cohort.ID == "all" {
		return CohortKeyNone
	}
	h := fnv.New32a()
	h.Write([]byte(cohort.ID))
	return fmt.Sprintf("c%08x", h.Sum32())
}
