package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Alert struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId   uuid.UUID      `gorm:"type:uuid;not null;index:idx_alerts_patient_created,priority:1"`
	Category    string         `gorm:"type:varchar(50);not null;index"`
	Severity    string         `gorm:"type:varchar(10);not null"`
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	Status      string         `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index:idx_alerts_patient_created,priority:2"`
	ResolvedAt  *time.Time
	ResolvedBy  *uuid.UUID `gorm:"type:uuid"`
}

func (Alert) TableName() string {
	return "alerts"
}
