package entity

import (
	"time"

	"github.com/google/uuid"
)

type MessageSender string

const (
	SenderPatient   MessageSender = "patient"
	SenderAssistant MessageSender = "assistant"
)

type Conversation struct {
	Id            uuid.UUID
	PatientId     uuid.UUID
	RiskLevel     string
	StartedAt     time.Time
	LastMessageAt time.Time
	EndedAt       *time.Time
}

type ConversationMessage struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Sender         MessageSender
	Content        string
	Emotion        *string
	CreatedAt      time.Time
}
