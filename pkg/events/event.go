package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ALERT_DISPATCHED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes published over the bus.
const (
	TypeAlertDispatched = "ALERT_DISPATCHED"
	TypeAlertResolved   = "ALERT_RESOLVED"
	TypeCrisisDetected  = "CRISIS_DETECTED"
	TypeReminderMissed  = "REMINDER_MISSED"
	TypeMoodLogged      = "MOOD_LOGGED"
)

// NewAlertDispatched builds the event emitted whenever an alert reaches
// persistence. Caregiver-facing consumers fan this out to websocket and
// email channels.
func NewAlertDispatched(alertId, patientId, category, severity, title string) BaseEvent {
	return BaseEvent{
		Type: TypeAlertDispatched,
		Data: map[string]interface{}{
			"alert_id":   alertId,
			"patient_id": patientId,
			"category":   category,
			"severity":   severity,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}

func NewCrisisDetected(patientId string, phrases []string) BaseEvent {
	return BaseEvent{
		Type: TypeCrisisDetected,
		Data: map[string]interface{}{
			"patient_id": patientId,
			"phrases":    phrases,
		},
		OccurredAt: time.Now(),
	}
}

func NewReminderMissed(reminderId, patientId, title string) BaseEvent {
	return BaseEvent{
		Type: TypeReminderMissed,
		Data: map[string]interface{}{
			"reminder_id": reminderId,
			"patient_id":  patientId,
			"title":       title,
		},
		OccurredAt: time.Now(),
	}
}
