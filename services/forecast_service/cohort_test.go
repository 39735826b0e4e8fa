package forecast_service

import (
	"testing"
	"time"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

func TestResolveCohort_Vocabulary(t *testing.T) {
	tests := []struct {
		id         string
		wantFilter bool
		wantPred   bool
	}{
		{id: "highValue", wantFilter: true, wantPred: true},
		{id: "recurring", wantFilter: true, wantPred: true},
		{id: "newCustomers", wantFilter: true, wantPred: true},
		{id: "all", wantFilter: false, wantPred: false},
		{id: "", wantFilter: false, wantPred: false},
		// Unknown ids silently resolve to no filter. Documented behavior,
		// not a defect: callers get the unfiltered aggregate.
		{id: "vipWhales", wantFilter: false, wantPred: false},
	}

	for _, tt := range tests {
		filter, pred := ResolveCohort(tt.id)
		if (filter != nil) != tt.wantFilter {
			t.Errorf("ResolveCohort(%q): filter=%v, want present=%v", tt.id, filter, tt.wantFilter)
		}
		if (pred != nil) != tt.wantPred {
			t.Errorf("ResolveCohort(%q): predicate present=%v, want %v", tt.id, pred != nil, tt.wantPred)
		}
		if filter != nil && filter.ID != tt.id {
			t.Errorf("ResolveCohort(%q): filter id %q", tt.id, filter.ID)
		}
	}
}

func TestResolveCohort_NewCustomersWindowTracksReference(t *testing.T) {
	_, pred := ResolveCohort("newCustomers")
	ref := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	clause, args := pred(ref)
	if clause != "created_at >= ?" {
		t.Fatalf("clause = %q", clause)
	}
	if len(args) != 1 {
		t.Fatalf("args = %v", args)
	}
	cutoff, ok := args[0].(time.Time)
	if !ok {
		t.Fatalf("arg type %T", args[0])
	}
	if want := ref.AddDate(0, 0, -30); !cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", cutoff, want)
	}
}

func TestCohortKey_Stability(t *testing.T) {
	filter, _ := ResolveCohort("highValue")

	key1 := CohortKey(filter)
	if key1 == CohortKeyNone || key1 == "" {
		t.Fatalf("expected a real key, got %q", key1)
	}

	// The key hashes the id alone: a cosmetic label rename must not move
	// the storage partition and strand history under the old key.
	renamed := &models.CohortFilter{ID: filter.ID, Label: "Premium orders"}
	if key2 := CohortKey(renamed); key2 != key1 {
		t.Errorf("label rename moved key: %q -> %q", key1, key2)
	}

	other, _ := ResolveCohort("recurring")
	if CohortKey(other) == key1 {
		t.Errorf("distinct cohorts share key %q", key1)
	}
}

func TestCohortKey_Sentinel(t *testing.T) {
	if key := CohortKey(nil); key != CohortKeyNone {
		t.Errorf("CohortKey(nil) = %q, want %q", key, CohortKeyNone)
	}
	if key := CohortKey(&models.CohortFilter{ID: "all", Label: "Everything"}); key != CohortKeyNone {
		t.Errorf("CohortKey(all) = %q, want %q", key, CohortKeyNone)
	}
}
