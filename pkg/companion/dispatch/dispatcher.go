package dispatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/metrics"

	"github.com/google/uuid"
)

// Cooldown windows per category.
const (
	emotionalWindow = 5 * time.Minute
	sosWindow       = 120 * time.Second
)

// AlertStore persists approved alerts. Invoked only after cooldown and
// crisis logic approve a dispatch.
type AlertStore interface {
	CreateAlert(ctx context.Context, alert *companion.Alert) (uuid.UUID, error)
}

// Request is one dispatch attempt.
type Request struct {
	PatientId   uuid.UUID
	Category    companion.AlertCategory
	Severity    companion.AlertSeverity
	Title       string
	Description string
	Metadata    map[string]interface{}

	// Crisis bypasses the caller-supplied severity and category: the
	// alert is forced to CRITICAL / mental-health-crisis.
	Crisis bool
}

// Dispatcher turns an approved signal into a caregiver alert, enforcing
// per-(patient, category) cooldowns.
type Dispatcher struct {
	cooldowns CooldownStore
	store     AlertStore
	windows   map[companion.AlertCategory]time.Duration
	logger    *log.Logger
	now       func() time.Time
}

func NewDispatcher(cooldowns CooldownStore, store AlertStore, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		cooldowns: cooldowns,
		store:     store,
		windows: map[companion.AlertCategory]time.Duration{
			companion.CategoryEmotionalConcern: emotionalWindow,
			companion.CategoryMentalHealth:     emotionalWindow,
			companion.CategorySOS:              sosWindow,
			companion.CategoryMissedMedication: emotionalWindow,
			companion.CategoryGeofence:         emotionalWindow,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Dispatch applies crisis overrides and the cooldown gate, then persists
// the alert. A suppressed dispatch is an outcome, not an error; a store
// failure is an error the caller must surface.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*companion.Alert, *companion.Suppression, error) {
	if req.Crisis {
		req.Category = companion.CategoryMentalHealth
		req.Severity = companion.SeverityCritical
		metrics.CrisisEscalations.Inc()
	}

	window := d.windows[req.Category]
	now := d.now()

	remaining, ok := d.cooldowns.Reserve(req.PatientId, req.Category, window, now)
	if !ok {
		d.logger.Printf("[DISPATCH] cooldown active for %s/%s, %s remaining", req.PatientId, req.Category, remaining)
		metrics.AlertsSuppressed.WithLabelValues(string(req.Category)).Inc()
		return nil, &companion.Suppression{
			Category:   req.Category,
			Reason:     "cooldown active",
			RetryAfter: remaining,
		}, nil
	}

	alert := &companion.Alert{
		Id:          uuid.New(),
		PatientId:   req.PatientId,
		Category:    req.Category,
		Severity:    req.Severity,
		Title:       req.Title,
		Description: req.Description,
		Metadata:    req.Metadata,
		Status:      companion.AlertStatusActive,
		CreatedAt:   now,
	}

	if _, err := d.store.CreateAlert(ctx, alert); err != nil {
		// Roll the reservation back so the next attempt is not
		// suppressed by a dispatch that never reached the store.
		d.cooldowns.Release(req.PatientId, req.Category)
		return nil, nil, fmt.Errorf("dispatch: persisting %s alert: %w", req.Category, err)
	}

	d.logger.Printf("[DISPATCH] %s alert %s created for patient %s (severity %s)", req.Category, alert.Id, req.PatientId, req.Severity)
	metrics.AlertsDispatched.WithLabelValues(string(req.Category), string(req.Severity)).Inc()
	return alert, nil, nil
}
