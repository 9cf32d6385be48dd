package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/bet-journal/internal/analytics"
)

// ReportKey identifies a cached report
type ReportKey struct {
	UserID uuid.UUID
	From   time.Time
	To     time.Time
	AsOf   time.Time
}

// String returns string representation of the key, prefixed by the user ID
func (k ReportKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s", k.UserID, dateKey(k.From), dateKey(k.To), dateKey(k.AsOf))
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// ReportCache provides in-memory caching for dashboard reports
type ReportCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewReportCache creates a new report cache. A cleanup of 0 purges at twice the TTL.
func NewReportCache(ttl, cleanup time.Duration) *ReportCache {
	if cleanup <= 0 {
		cleanup = ttl * 2
	}
	return &ReportCache{
		cache: cache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Get retrieves a cached report
func (rc *ReportCache) Get(key ReportKey) (*analytics.Report, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if item, found := rc.cache.Get(key.String()); found {
		if report, ok := item.(*analytics.Report); ok {
			rc.hitCount++
			return report, true
		}
	}
	rc.missCount++
	return nil, false
}

// Set stores a report in cache
func (rc *ReportCache) Set(key ReportKey, report *analytics.Report) {
	rc.cache.Set(key.String(), report, rc.ttl)
}

// Invalidate removes all cached reports for a user
func (rc *ReportCache) Invalidate(userID uuid.UUID) {
	prefix := userID.String() + ":"
	for key := range rc.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			rc.cache.Delete(key)
		}
	}
}

// Stats returns hit and miss counts
func (rc *ReportCache) Stats() (hits, misses uint64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hitCount, rc.missCount
}

// Len returns the number of cached reports, including expired ones not yet purged
func (rc *ReportCache) Len() int {
	return rc.cache.ItemCount()
}
