package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-webhook/internal/weather"
)

var (
	// ErrNotFound is returned when no fresh series is cached for a location.
	ErrNotFound = errors.New("no cached weather series for location")
)

type entry struct {
	series    weather.Series
	fetchedAt time.Time
}

// MemoryStore is a concurrency-safe, TTL-bounded cache of raw provider series.
// A zero TTL disables caching: saves are dropped and every lookup misses.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key
	data map[string]entry

	// retention configuration
	ttl        time.Duration // max age of a cached series
	maxEntries int           // max number of cached locations (0 = unlimited)

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with the given retention limits.
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Enabled reports whether the store keeps anything at all.
func (s *MemoryStore) Enabled() bool {
	return s.ttl > 0
}

// SaveSeries stores a copy of the series for a location and enforces retention.
func (s *MemoryStore) SaveSeries(loc weather.Location, series weather.Series) {
	if !s.Enabled() {
		return
	}

	cp := series
	cp.Samples = append([]weather.Sample(nil), series.Samples...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[loc.Key()] = entry{series: cp, fetchedAt: s.now()}

	// Enforce retention by count, evicting the oldest entries first.
	for s.maxEntries > 0 && len(s.data) > s.maxEntries {
		oldestKey := ""
		var oldest time.Time
		for k, e := range s.data {
			if oldestKey == "" || e.fetchedAt.Before(oldest) || (e.fetchedAt.Equal(oldest) && k < oldestKey) {
				oldestKey, oldest = k, e.fetchedAt
			}
		}
		delete(s.data, oldestKey)
	}
}

// GetSeries returns the cached series for a location if it is still fresh.
// The returned series does not share its sample slice with the cache.
func (s *MemoryStore) GetSeries(loc weather.Location) (weather.Series, error) {
	if !s.Enabled() {
		return weather.Series{}, ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[loc.Key()]
	if !ok || s.expired(e) {
		return weather.Series{}, ErrNotFound
	}
	cp := e.series
	cp.Samples = append([]weather.Sample(nil), e.series.Samples...)
	return cp, nil
}

// Purge drops expired entries and returns how many were removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.data {
		if s.expired(e) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached locations, fresh or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) expired(e entry) bool {
	return s.now().Sub(e.fetchedAt) >= s.ttl
}
