package memory

import (
	"time"

	"eldercare-assist-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps active pipeline sessions in memory. Sessions
// idle for an hour are purged; the confirmation machine handles the
// shorter pending-action TTL itself.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// GetByPatient returns the active session for a patient, if any.
// Sessions are keyed by session id, so this walks the live items; the
// active set is small (one per connected patient).
func (r *SessionRepository) GetByPatient(patientID string) (*store.Session, bool) {
	for _, item := range r.cache.Items() {
		if sess, ok := item.Object.(*store.Session); ok && sess.PatientID == patientID {
			return sess, true
		}
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
