package store

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Store keeps the short-lived history of commands sent from the dashboard.
// The vendor stays the source of truth; the history only fills gaps in what it
// reports.
type Store interface {
	RecordButton(rec ButtonRecord)
	LastButton(applianceID string) (ButtonRecord, bool)
	Forget(applianceID string)
}

// cacheStore implements the Store interface on top of go-cache.
type cacheStore struct {
	c   *cache.Cache
	ttl time.Duration
}

// NewCacheStore creates a history store whose entries expire after ttl.
func NewCacheStore(ttl time.Duration) Store {
	return &cacheStore{
		c:   cache.New(ttl, 2*ttl),
		ttl: ttl,
	}
}

// RecordButton remembers the latest command sent to an appliance.
func (s *cacheStore) RecordButton(rec ButtonRecord) {
	if rec.SentAt.IsZero() {
		rec.SentAt = time.Now().UTC()
	}
	s.c.Set(rec.ApplianceID, rec, s.ttl)
}

// LastButton returns the latest unexpired command sent to an appliance.
func (s *cacheStore) LastButton(applianceID string) (ButtonRecord, bool) {
	v, found := s.c.Get(applianceID)
	if !found {
		return ButtonRecord{}, false
	}
	return v.(ButtonRecord), true
}

// Forget drops the history of an appliance.
func (s *cacheStore) Forget(applianceID string) {
	s.c.Delete(applianceID)
}
