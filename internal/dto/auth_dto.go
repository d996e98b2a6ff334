package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FullName  string `json:"full_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=patient caregiver clinician"`
	Caregiver string `json:"caregiver_id,omitempty"`
}

type RegisterResponse struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserProfile struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserProfile `json:"user"`
}
