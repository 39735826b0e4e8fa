package models

import "time"

// Order mirrors the slice of the main application's order ledger this
// service reads. The ledger is owned by the core backend; only the columns
// the aggregation queries touch are mapped here.
type Order struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid"`
	BranchID          string    `json:"branch_id"`
	CustomerID        string    `json:"customer_id"`
	OrderNumber       string    `json:"order_number"`
	TotalAmount       float64   `json:"total_amount"`
	Status            string    `json:"status"`
	PackageCreditUsed bool      `json:"package_credit_used"` // paid (fully or partly) with a package credit
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Ledger statuses excluded from every aggregate, uniformly. Owned by the
// core backend's order state machine; keep in sync.
var VoidedOrderStatuses = []string{"cancelled", "payment_failed", "void"}
