package entity

import (
	"time"

	"github.com/google/uuid"
)

type MoodEntry struct {
	Id        uuid.UUID
	PatientId uuid.UUID
	Mood      string // canonical 4-value label
	RawInput  string // what the patient actually said/typed
	Note      string
	CreatedAt time.Time
}

type ReminderKind string

const (
	ReminderMedication  ReminderKind = "medication"
	ReminderAppointment ReminderKind = "appointment"
	ReminderGeneral     ReminderKind = "general"
)

type Reminder struct {
	Id        uuid.UUID
	PatientId uuid.UUID
	Title     string
	Kind      ReminderKind
	DueAt     time.Time

	// AcknowledgedAt is set when the patient confirms the reminder.
	// MissedAlertedAt marks that the overdue sweep already alerted, so
	// one missed reminder never produces repeated alerts.
	AcknowledgedAt  *time.Time
	MissedAlertedAt *time.Time

	Active    bool
	CreatedAt time.Time
}

type TimelineEvent struct {
	Id         uuid.UUID
	PatientId  uuid.UUID
	Kind       string
	Summary    string
	Metadata   map[string]interface{}
	OccurredAt time.Time
}

type VoiceCommand struct {
	Id         uuid.UUID
	PatientId  uuid.UUID
	Transcript string
	Intent     string
	Emotion    string
	Confidence float64
	Outcome    string
	CreatedAt  time.Time
}
