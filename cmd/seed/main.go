package main

import (
	"log"
	"os"
	"time"

	"eldercare-assist-be/internal/model"
	"eldercare-assist-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo care circle...")

	caregiver := seedUser(db, "caregiver@example.com", "Dewi Hartono", "caregiver", nil)
	patient := seedUser(db, "patient@example.com", "Pak Budi", "patient", &caregiver.Id)
	seedUser(db, "clinician@example.com", "Dr. Sari", "clinician", nil)

	seedReminders(db, patient.Id)

	color.Green("Seed complete.")
	color.Yellow("Demo credentials: caregiver@example.com / patient@example.com / clinician@example.com (password: password123)")
}

func seedUser(db *gorm.DB, email, fullName, role string, caregiverId *uuid.UUID) *model.User {
	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("  %s already exists, skipping", email)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: hashing password: %v", err)
	}
	hashStr := string(hash)

	user := model.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: &hashStr,
		FullName:     fullName,
		Role:         role,
		Status:       "active",
		CaregiverId:  caregiverId,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Error: creating %s: %v", email, err)
	}

	color.Green("  Created %s (%s)", email, role)
	return &user
}

func seedReminders(db *gorm.DB, patientId uuid.UUID) {
	var count int64
	db.Model(&model.Reminder{}).Where("patient_id = ?", patientId).Count(&count)
	if count > 0 {
		color.Yellow("  Reminders already seeded, skipping")
		return
	}

	now := time.Now()
	reminders := []model.Reminder{
		{
			Id:        uuid.New(),
			PatientId: patientId,
			Title:     "Morning blood pressure medication",
			Kind:      "medication",
			DueAt:     time.Date(now.Year(), now.Month(), now.Day(), 8, 0, 0, 0, now.Location()).Add(24 * time.Hour),
			Active:    true,
		},
		{
			Id:        uuid.New(),
			PatientId: patientId,
			Title:     "Cardiology appointment",
			Kind:      "appointment",
			DueAt:     now.Add(72 * time.Hour),
			Active:    true,
		},
		{
			Id:        uuid.New(),
			PatientId: patientId,
			Title:     "Call granddaughter",
			Kind:      "general",
			DueAt:     now.Add(48 * time.Hour),
			Active:    true,
		},
	}

	for _, r := range reminders {
		if err := db.Create(&r).Error; err != nil {
			log.Fatalf("Error: creating reminder %q: %v", r.Title, err)
		}
		color.Green("  Created reminder %q", r.Title)
	}
}
