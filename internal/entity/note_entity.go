package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteSource string

const (
	NoteSourceVoice  NoteSource = "voice"
	NoteSourceManual NoteSource = "manual"
)

type Note struct {
	Id        uuid.UUID
	PatientId uuid.UUID
	Content   string
	Source    NoteSource
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
