package store

import "eldercare-assist-be/pkg/companion"

// Session is the active per-patient pipeline state held in memory.
// One active session per patient is assumed; utterances for a single
// patient are serialized against it.
type Session struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	State     string `json:"state"` // "IDLE" | "AWAITING_CONFIRMATION"

	// Pending is the single confirmation slot. While it is occupied the
	// next utterance is interpreted as the yes/no answer, never as a new
	// command.
	Pending *companion.PendingAction `json:"pending,omitempty"`

	// ConversationID links to the persisted companion conversation.
	ConversationID string `json:"conversation_id"`

	// Risk mirrors the persisted conversation risk for quick reads.
	Risk companion.RiskLevel `json:"risk"`

	LastUtterance string `json:"last_utterance"`
}

const (
	StateIdle                 = "IDLE"
	StateAwaitingConfirmation = "AWAITING_CONFIRMATION"
)
