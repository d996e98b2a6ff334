package dispatch

import (
	"fmt"
	"sync"
	"time"

	"eldercare-assist-be/pkg/companion"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CooldownStore tracks the last dispatch per (patient, category). It is
// injectable so tests and future shared backends can replace the
// in-memory default.
type CooldownStore interface {
	// Reserve atomically checks and records a dispatch at `now` for the
	// given window. When a cooldown is active it returns the remaining
	// duration and ok=false without touching the entry.
	Reserve(patientId uuid.UUID, category companion.AlertCategory, window time.Duration, now time.Time) (time.Duration, bool)

	// Release drops a reservation, used when the alert store fails after
	// Reserve so a retry is not suppressed. Fail open.
	Release(patientId uuid.UUID, category companion.AlertCategory)
}

// MemoryCooldownStore keeps cooldown entries in a TTL cache. Entries
// expire naturally with their window; state is process-local and lost on
// restart, which under-suppresses rather than over-suppresses.
type MemoryCooldownStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewMemoryCooldownStore() *MemoryCooldownStore {
	// No default expiration; each entry carries its own window.
	return &MemoryCooldownStore{
		cache: cache.New(cache.NoExpiration, time.Minute),
	}
}

func (s *MemoryCooldownStore) Reserve(patientId uuid.UUID, category companion.AlertCategory, window time.Duration, now time.Time) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cooldownKey(patientId, category)
	if v, found := s.cache.Get(key); found {
		lastFiredAt := v.(time.Time)
		if elapsed := now.Sub(lastFiredAt); elapsed < window {
			return window - elapsed, false
		}
	}

	s.cache.Set(key, now, window)
	return 0, true
}

func (s *MemoryCooldownStore) Release(patientId uuid.UUID, category companion.AlertCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Delete(cooldownKey(patientId, category))
}

func cooldownKey(patientId uuid.UUID, category companion.AlertCategory) string {
	return fmt.Sprintf("%s:%s", patientId, category)
}
