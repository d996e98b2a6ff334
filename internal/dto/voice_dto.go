package dto

import "github.com/google/uuid"

// VoiceUtteranceRequest carries one recognized utterance. Audio samples
// are optional; when present the emotion arbiter may prefer them.
type VoiceUtteranceRequest struct {
	Text       string    `json:"text"`
	Audio      []float32 `json:"audio,omitempty"`
	SampleRate int       `json:"sample_rate,omitempty"`
}

type SignalPayload struct {
	Kind       string  `json:"kind"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`
	Critical   bool    `json:"critical"`
}

type PendingPayload struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
	State   string `json:"state"`
}

type AlertPayload struct {
	Id       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Severity string    `json:"severity"`
	Title    string    `json:"title"`
}

type SuppressionPayload struct {
	Category     string `json:"category"`
	Reason       string `json:"reason"`
	RetryAfterMs int64  `json:"retry_after_ms"`
}

// VoiceUtteranceResponse is the discriminated outcome of one utterance.
// Exactly the field matching Type is populated.
type VoiceUtteranceResponse struct {
	Type        string              `json:"type"`
	Reply       string              `json:"reply,omitempty"`
	Reprompt    bool                `json:"reprompt,omitempty"`
	Signal      *SignalPayload      `json:"signal,omitempty"`
	Pending     *PendingPayload     `json:"pending,omitempty"`
	Alert       *AlertPayload       `json:"alert,omitempty"`
	Suppression *SuppressionPayload `json:"suppression,omitempty"`
	NoteId      *uuid.UUID          `json:"note_id,omitempty"`
}

type VoiceCommandResponse struct {
	Id         uuid.UUID `json:"id"`
	Transcript string    `json:"transcript"`
	Intent     string    `json:"intent"`
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	Outcome    string    `json:"outcome"`
	CreatedAt  string    `json:"created_at"`
}
