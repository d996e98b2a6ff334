package companion

import (
	"time"

	"github.com/google/uuid"
)

// SignalKind discriminates classified results
type SignalKind string

const (
	SignalIntent  SignalKind = "Intent"
	SignalEmotion SignalKind = "Emotion"
)

// Signal sources
const (
	SourceAudio = "audio"
	SourceText  = "text"
)

// Canonical emotion labels
const (
	EmotionHappy    = "Happy"
	EmotionNeutral  = "Neutral"
	EmotionSad      = "Sad"
	EmotionStressed = "Stressed"
)

// Intent labels
const (
	IntentNote = "note"
	IntentSOS  = "sos"
	IntentNone = "none"
)

// Utterance is one recognized unit of patient speech/text.
// It is transient and never persisted as-is.
type Utterance struct {
	Text       string
	Audio      []float32 // optional raw audio samples
	SampleRate int
	At         time.Time
}

// Signal is a classified intent or emotion result derived from an Utterance.
type Signal struct {
	Kind       SignalKind
	Label      string
	Confidence float64
	Source     string // "audio" | "text"
	Critical   bool
}

// ClampConfidence bounds a raw confidence into [0,1].
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// ActionType identifies what a PendingAction will do once confirmed.
type ActionType string

const (
	ActionNote ActionType = "Note"
	ActionSOS  ActionType = "SOS"
)

// PendingAction states
type ActionState string

const (
	StateAwaitingConfirmation ActionState = "AwaitingConfirmation"
	StateConfirmed            ActionState = "Confirmed"
	StateCancelled            ActionState = "Cancelled"
	StateExpired              ActionState = "Expired"
)

// PendingAction is an action gated behind explicit confirmation.
// At most one may exist per patient session.
type PendingAction struct {
	Type      ActionType
	Payload   string
	CreatedAt time.Time
	State     ActionState
}

// AlertCategory classifies caregiver alerts.
type AlertCategory string

const (
	CategoryEmotionalConcern AlertCategory = "emotional-concern"
	CategoryMentalHealth     AlertCategory = "mental-health-crisis"
	CategorySOS              AlertCategory = "sos"
	CategoryMissedMedication AlertCategory = "missed-medication"
	CategoryGeofence         AlertCategory = "geofence"
)

// AlertSeverity levels, ordered.
type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "LOW"
	SeverityMedium   AlertSeverity = "MEDIUM"
	SeverityHigh     AlertSeverity = "HIGH"
	SeverityCritical AlertSeverity = "CRITICAL"
)

var severityRank = map[AlertSeverity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// MaxSeverity returns the higher of two severities.
func MaxSeverity(a, b AlertSeverity) AlertSeverity {
	if severityRank[a] >= severityRank[b] {
		return a
	}
	return b
}

// Alert statuses
const (
	AlertStatusActive   = "ACTIVE"
	AlertStatusResolved = "RESOLVED"
)

// Alert is the caregiver-facing record produced by the dispatcher.
type Alert struct {
	Id          uuid.UUID
	PatientId   uuid.UUID
	Category    AlertCategory
	Severity    AlertSeverity
	Title       string
	Description string
	Metadata    map[string]interface{}
	Status      string
	CreatedAt   time.Time
}

// Suppression reports a dispatch rejected by an active cooldown.
// It is an outcome, not an error.
type Suppression struct {
	Category   AlertCategory
	Reason     string
	RetryAfter time.Duration
}

// RetryAfterMs is the remaining cooldown in milliseconds, for API payloads.
func (s Suppression) RetryAfterMs() int64 {
	return s.RetryAfter.Milliseconds()
}

// Mood is the canonical 4-value mood enum.
type Mood string

const (
	MoodHappy   Mood = "Happy"
	MoodNeutral Mood = "Neutral"
	MoodSad     Mood = "Sad"
	MoodLoved   Mood = "Loved"
)

// RiskLevel scores a conversation's cumulative emotional risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

var riskRank = map[RiskLevel]int{
	RiskLow:    0,
	RiskMedium: 1,
	RiskHigh:   2,
}

// MaxRisk returns the higher of two risk levels. Callers use it to keep
// per-conversation risk monotonically non-decreasing.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if riskRank[a] >= riskRank[b] {
		return a
	}
	return b
}
