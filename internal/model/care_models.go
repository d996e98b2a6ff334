package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MoodEntry struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId uuid.UUID `gorm:"type:uuid;not null;index:idx_moods_patient_created,priority:1"`
	Mood      string    `gorm:"type:varchar(10);not null"`
	RawInput  string    `gorm:"type:text"`
	Note      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_moods_patient_created,priority:2"`
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}

type Reminder struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"type:varchar(200);not null"`
	Kind            string    `gorm:"type:varchar(20);not null;default:'general'"`
	DueAt           time.Time `gorm:"not null;index"`
	AcknowledgedAt  *time.Time
	MissedAlertedAt *time.Time
	Active          bool      `gorm:"default:true;index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Reminder) TableName() string {
	return "reminders"
}

type TimelineEvent struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId  uuid.UUID      `gorm:"type:uuid;not null;index:idx_timeline_patient_occurred,priority:1"`
	Kind       string         `gorm:"type:varchar(50);not null"`
	Summary    string         `gorm:"type:text;not null"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	OccurredAt time.Time      `gorm:"not null;index:idx_timeline_patient_occurred,priority:2"`
}

func (TimelineEvent) TableName() string {
	return "timeline_events"
}

type VoiceCommand struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Transcript string    `gorm:"type:text"`
	Intent     string    `gorm:"type:varchar(20)"`
	Emotion    string    `gorm:"type:varchar(20)"`
	Confidence float64
	Outcome    string    `gorm:"type:varchar(30)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (VoiceCommand) TableName() string {
	return "voice_commands"
}
