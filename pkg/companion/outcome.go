package companion

import "github.com/google/uuid"

// OutcomeType discriminates per-utterance pipeline results.
type OutcomeType string

const (
	OutcomeSignal            OutcomeType = "signal"
	OutcomeNeedsConfirmation OutcomeType = "needs_confirmation"
	OutcomeAlertDispatched   OutcomeType = "alert_dispatched"
	OutcomeAlertSuppressed   OutcomeType = "alert_suppressed"
	OutcomeActionCompleted   OutcomeType = "action_completed"
	OutcomeActionCancelled   OutcomeType = "action_cancelled"
)

// Outcome is the discriminated result of processing one utterance.
// Exactly one of the payload fields matching Type is set.
type Outcome struct {
	Type        OutcomeType
	Signal      *Signal
	Pending     *PendingAction
	Alert       *Alert
	Suppression *Suppression

	// NoteId is set when Type is OutcomeActionCompleted for a note action.
	NoteId uuid.UUID

	// Reply is the plain response string handed to the text-to-speech
	// collaborator. Playback itself is external.
	Reply string

	// Reprompt marks an ambiguous confirmation answer: the caller should
	// ask again instead of guessing.
	Reprompt bool
}
