package forecast_controller

import (
	"strings"
	"time"

	forecast "github.com/zeez-dotcom/laundryao-sub003/services/forecast_service"
)

// Package-level collaborators set once from main. The engine itself takes
// its store, loader, signal provider and clock through its constructor;
// handlers only hold the assembled instance.
var (
	engine *forecast.Engine
	locker forecast.RunLocker
)

// Init wires the handlers to an assembled engine and run locker.
func Init(e *forecast.Engine, l forecast.RunLocker) {
	engine = e
	locker = l
}

// scopeParam normalizes the optional scope (branch) query/body value:
// empty or "all" means every branch.
func scopeParam(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return nil
	}
	return &raw
}

// dateParam parses an optional YYYY-MM-DD bound.
func dateParam(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	t = t.UTC()
	return &t, true
}
