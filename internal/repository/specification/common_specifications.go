package specification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByID filters by ID
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByPatientID filters patient-owned rows.
type ByPatientID struct {
	PatientID uuid.UUID
}

func (s ByPatientID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("patient_id = ?", s.PatientID)
}

// ByEmail filters users by email.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByStatus filters by a status column.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ActiveOnly keeps rows whose active flag is set.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// DueBefore keeps rows due at or before the cutoff.
type DueBefore struct {
	Cutoff time.Time
}

func (s DueBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("due_at <= ?", s.Cutoff)
}

// CreatedAfter keeps rows created at or after the cutoff.
type CreatedAfter struct {
	Cutoff time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Cutoff)
}

// OccurredAfter keeps timeline rows occurring at or after the cutoff.
type OccurredAfter struct {
	Cutoff time.Time
}

func (s OccurredAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("occurred_at >= ?", s.Cutoff)
}

// OrderBy applies ordering
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// FilterBy Generic Filter
type FilterBy struct {
	Field string
	Value interface{}
}

func (s FilterBy) Apply(db *gorm.DB) *gorm.DB {
	query := fmt.Sprintf("%s = ?", s.Field)
	return db.Where(query, s.Value)
}

func Filter(field string, value interface{}) Specification {
	return FilterBy{Field: field, Value: value}
}
