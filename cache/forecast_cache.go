package forecast_cache

import (
	"strings"
	"sync"
	"time"

	"github.com/zeez-dotcom/laundryao-sub003/models"
)

const TTL = 5 * time.Minute

// ── Stored-forecast list cache ───────────────────────────────────────────────
// Keyed per (metric, scope, cohortKey, bounds). A run invalidates every
// entry under its run key so readers never see a superseded horizon.

type listEntry struct {
	records   []models.ForecastRecord
	fetchedAt time.Time
}

var (
	listMu    sync.RWMutex
	listCache = make(map[string]listEntry)
)

// Key builds the cache key; bounds is the caller's rendered date-range
// suffix ("" when unbounded).
func Key(runKey, bounds string) string {
	return runKey + "|" + bounds
}

func GetList(key string) ([]models.ForecastRecord, bool) {
	listMu.RLock()
	defer listMu.RUnlock()
	entry, ok := listCache[key]
	if ok && time.Since(entry.fetchedAt) < TTL {
		return entry.records, true
	}
	return nil, false
}

func SetList(key string, records []models.ForecastRecord) {
	listMu.Lock()
	defer listMu.Unlock()
	listCache[key] = listEntry{records: records, fetchedAt: time.Now()}
}

// ── Invalidate one run key (call after every completed run) ──────────────────

func Invalidate(runKey string) {
	listMu.Lock()
	defer listMu.Unlock()
	for key := range listCache {
		if strings.HasPrefix(key, runKey+"|") {
			delete(listCache, key)
		}
	}
}
