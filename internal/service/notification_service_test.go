package service

import (
	"strings"
	"testing"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildNotification(t *testing.T) {
	patient := &entity.User{
		Id:       uuid.New(),
		FullName: "Pak Budi",
		Role:     entity.UserRolePatient,
	}

	t.Run("alert dispatched carries severity and title", func(t *testing.T) {
		notif := buildNotification(events.TypeAlertDispatched, patient, map[string]interface{}{
			"title":    "Emergency SOS",
			"severity": "HIGH",
		})

		assert.Equal(t, events.TypeAlertDispatched, notif.TypeCode)
		assert.Equal(t, "[HIGH] Emergency SOS", notif.Title)
		assert.Contains(t, notif.Message, "Pak Budi")
		assert.Contains(t, notif.Message, "Emergency SOS")
	})

	t.Run("crisis message urges immediate check-in", func(t *testing.T) {
		notif := buildNotification(events.TypeCrisisDetected, patient, map[string]interface{}{})

		assert.Contains(t, notif.Message, "Pak Budi")
		assert.Contains(t, strings.ToLower(notif.Message), "immediately")
	})

	t.Run("reminder missed names the reminder", func(t *testing.T) {
		notif := buildNotification(events.TypeReminderMissed, patient, map[string]interface{}{
			"title": "Morning medication",
		})

		assert.Equal(t, "Reminder missed", notif.Title)
		assert.Contains(t, notif.Message, "Morning medication")
	})

	t.Run("nil patient falls back to generic name", func(t *testing.T) {
		notif := buildNotification(events.TypeMoodLogged, nil, map[string]interface{}{"mood": "Sad"})

		assert.Contains(t, notif.Message, "your patient")
	})

	t.Run("unknown type still produces a message", func(t *testing.T) {
		notif := buildNotification("SOMETHING_NEW", patient, map[string]interface{}{})

		assert.Equal(t, "SOMETHING_NEW", notif.TypeCode)
		assert.NotEmpty(t, notif.Message)
	})
}
