package service

import (
	"testing"
	"time"

	"eldercare-assist-be/pkg/companion"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapOutcomeDiscriminatesPayloads(t *testing.T) {
	t.Run("signal outcome", func(t *testing.T) {
		resp := mapOutcome(&companion.Outcome{
			Type:  companion.OutcomeSignal,
			Reply: "Glad to hear it.",
			Signal: &companion.Signal{
				Kind:       companion.SignalEmotion,
				Label:      companion.EmotionHappy,
				Confidence: 0.7,
				Source:     companion.SourceText,
			},
		})

		assert.Equal(t, string(companion.OutcomeSignal), resp.Type)
		require.NotNil(t, resp.Signal)
		assert.Equal(t, companion.EmotionHappy, resp.Signal.Label)
		assert.Nil(t, resp.Alert)
		assert.Nil(t, resp.Pending)
		assert.Nil(t, resp.Suppression)
		assert.Nil(t, resp.NoteId)
	})

	t.Run("pending confirmation carries reprompt flag", func(t *testing.T) {
		resp := mapOutcome(&companion.Outcome{
			Type:     companion.OutcomeNeedsConfirmation,
			Reply:    "Did you want me to call for help?",
			Reprompt: true,
			Pending: &companion.PendingAction{
				Type:      companion.ActionSOS,
				CreatedAt: time.Now(),
				State:     companion.StateAwaitingConfirmation,
			},
		})

		assert.True(t, resp.Reprompt)
		require.NotNil(t, resp.Pending)
		assert.Equal(t, string(companion.ActionSOS), resp.Pending.Type)
	})

	t.Run("dispatched alert", func(t *testing.T) {
		alertId := uuid.New()
		resp := mapOutcome(&companion.Outcome{
			Type: companion.OutcomeAlertDispatched,
			Alert: &companion.Alert{
				Id:       alertId,
				Category: companion.CategorySOS,
				Severity: companion.SeverityHigh,
				Title:    "Emergency SOS",
			},
		})

		require.NotNil(t, resp.Alert)
		assert.Equal(t, alertId, resp.Alert.Id)
		assert.Equal(t, string(companion.CategorySOS), resp.Alert.Category)
	})

	t.Run("suppression exposes retry hint in ms", func(t *testing.T) {
		resp := mapOutcome(&companion.Outcome{
			Type: companion.OutcomeAlertSuppressed,
			Suppression: &companion.Suppression{
				Category:   companion.CategorySOS,
				Reason:     "cooldown active",
				RetryAfter: 90 * time.Second,
			},
		})

		require.NotNil(t, resp.Suppression)
		assert.Equal(t, int64(90000), resp.Suppression.RetryAfterMs)
	})

	t.Run("completed note action exposes note id", func(t *testing.T) {
		noteId := uuid.New()
		resp := mapOutcome(&companion.Outcome{
			Type:   companion.OutcomeActionCompleted,
			NoteId: noteId,
		})

		require.NotNil(t, resp.NoteId)
		assert.Equal(t, noteId, *resp.NoteId)
	})
}
