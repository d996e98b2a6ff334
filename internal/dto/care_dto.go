package dto

import (
	"time"

	"github.com/google/uuid"
)

// Alerts

type AlertResponse struct {
	Id          uuid.UUID              `json:"id"`
	PatientId   uuid.UUID              `json:"patient_id"`
	Category    string                 `json:"category"`
	Severity    string                 `json:"severity"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Status      string                 `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	ResolvedAt  *time.Time             `json:"resolved_at,omitempty"`
}

type ResolveAlertRequest struct {
	AlertId uuid.UUID `json:"alert_id" validate:"required"`
}

// Mood

type LogMoodRequest struct {
	Input string `json:"input" validate:"required"`
	Note  string `json:"note"`
}

type MoodEntryResponse struct {
	Id        uuid.UUID `json:"id"`
	Mood      string    `json:"mood"`
	RawInput  string    `json:"raw_input"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notes

type CreateNoteRequest struct {
	Content string `json:"content" validate:"required"`
}

type NoteResponse struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// Reminders

type CreateReminderRequest struct {
	Title string    `json:"title" validate:"required"`
	Kind  string    `json:"kind" validate:"required,oneof=medication appointment general"`
	DueAt time.Time `json:"due_at" validate:"required"`
}

type ReminderResponse struct {
	Id             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Kind           string     `json:"kind"`
	DueAt          time.Time  `json:"due_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	Active         bool       `json:"active"`
}

// Companion chat

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Reply     string `json:"reply"`
	Emotion   string `json:"emotion,omitempty"`
	RiskLevel string `json:"risk_level"`
	Outcome   string `json:"outcome"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Emotion   string    `json:"emotion,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Timeline

type TimelineEventResponse struct {
	Id         uuid.UUID              `json:"id"`
	Kind       string                 `json:"kind"`
	Summary    string                 `json:"summary"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Internal queue messages

type TimelineEventMessage struct {
	PatientId  uuid.UUID              `json:"patient_id"`
	Kind       string                 `json:"kind"`
	Summary    string                 `json:"summary"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
