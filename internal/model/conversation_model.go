package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId     uuid.UUID `gorm:"type:uuid;not null;index"`
	RiskLevel     string    `gorm:"type:varchar(10);not null;default:'LOW'"`
	StartedAt     time.Time `gorm:"autoCreateTime"`
	LastMessageAt time.Time
	EndedAt       *time.Time `gorm:"index"`
}

func (Conversation) TableName() string {
	return "conversations"
}

type ConversationMessage struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_conversation_created,priority:1"`
	Sender         string    `gorm:"type:varchar(20);not null"`
	Content        string    `gorm:"type:text;not null"`
	Emotion        *string   `gorm:"type:varchar(20)"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_messages_conversation_created,priority:2"`
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}
