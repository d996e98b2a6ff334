package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	SMTP      SMTPConfig
	Companion CompanionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type CompanionConfig struct {
	// SpeechProvider selects the speech backend ("simulated" is the
	// only built-in).
	SpeechProvider string

	// ConfirmationTTLSeconds bounds how long a pending note/SOS action
	// waits for its yes/no answer.
	ConfirmationTTLSeconds int

	// ReminderSweepCron schedules the missed-medication sweep.
	ReminderSweepCron string

	// DailyReportCron schedules the caregiver daily summary.
	DailyReportCron string

	// TimelineTopic names the in-process queue for timeline writes.
	TimelineTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ElderCare Assist"),
		},
		Companion: CompanionConfig{
			SpeechProvider:         getEnv("SPEECH_PROVIDER", "simulated"),
			ConfirmationTTLSeconds: getEnvAsInt("CONFIRMATION_TTL_SECONDS", 60),
			ReminderSweepCron:      getEnv("REMINDER_SWEEP_CRON", "*/5 * * * *"),
			DailyReportCron:        getEnv("DAILY_REPORT_CRON", "0 18 * * *"),
			TimelineTopic:          getEnv("TIMELINE_TOPIC", "timeline_events"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
