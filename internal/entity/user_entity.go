package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRolePatient   UserRole = "patient"
	UserRoleCaregiver UserRole = "caregiver"
	UserRoleClinician UserRole = "clinician"

	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	Role         UserRole
	Status       UserStatus

	// CaregiverId links a patient to their primary caregiver. Alerts
	// for the patient fan out to this user.
	CaregiverId *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}
