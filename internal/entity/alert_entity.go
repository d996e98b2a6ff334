package entity

import (
	"time"

	"github.com/google/uuid"
)

type Alert struct {
	Id          uuid.UUID
	PatientId   uuid.UUID
	Category    string
	Severity    string
	Title       string
	Description string
	Metadata    map[string]interface{}
	Status      string
	CreatedAt   time.Time
	ResolvedAt  *time.Time
	ResolvedBy  *uuid.UUID
}
