package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content   string         `gorm:"type:text;not null"`
	Source    string         `gorm:"type:varchar(20);not null;default:'manual'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
