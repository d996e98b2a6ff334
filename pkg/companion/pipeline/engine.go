package pipeline

import (
	"context"
	"fmt"
	"log"

	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/classify"
	"eldercare-assist-be/pkg/companion/confirm"
	"eldercare-assist-be/pkg/companion/crisis"
	"eldercare-assist-be/pkg/companion/dispatch"
	"eldercare-assist-be/pkg/companion/emotion"
	"eldercare-assist-be/pkg/companion/risk"
	"eldercare-assist-be/pkg/store"

	"github.com/google/uuid"
)

// alertFloor is the minimum emotion confidence that produces a
// caregiver alert. Below it the signal is reported but not alerted.
const alertFloor = 0.60

// NoteStore persists patient notes, invoked only after a Confirmed note
// transition.
type NoteStore interface {
	CreateNote(ctx context.Context, patientId uuid.UUID, content string) (uuid.UUID, error)
}

// ConversationStore reads and writes per-conversation risk. The engine
// compares old vs. new before persisting so risk never downgrades
// within a session.
type ConversationStore interface {
	GetConversationRisk(ctx context.Context, patientId uuid.UUID) (companion.RiskLevel, error)
	SetConversationRisk(ctx context.Context, patientId uuid.UUID, level companion.RiskLevel) error
}

// Engine runs the conversational-safety pipeline for one utterance at a
// time. Callers serialize utterances per patient; distinct patients are
// fully independent.
type Engine struct {
	classifier    *classify.Classifier
	crisisFilter  *crisis.Filter
	arbiter       *emotion.Arbiter
	machine       *confirm.Machine
	dispatcher    *dispatch.Dispatcher
	notes         NoteStore
	conversations ConversationStore
	logger        *log.Logger
}

func NewEngine(
	classifier *classify.Classifier,
	crisisFilter *crisis.Filter,
	arbiter *emotion.Arbiter,
	machine *confirm.Machine,
	dispatcher *dispatch.Dispatcher,
	notes NoteStore,
	conversations ConversationStore,
	logger *log.Logger,
) *Engine {
	return &Engine{
		classifier:    classifier,
		crisisFilter:  crisisFilter,
		arbiter:       arbiter,
		machine:       machine,
		dispatcher:    dispatcher,
		notes:         notes,
		conversations: conversations,
		logger:        logger,
	}
}

// Process classifies one utterance and returns the discriminated
// outcome. The session is tagged with its confirmation state before
// classification, so replies to a pending action are never reclassified
// as new commands.
func (e *Engine) Process(ctx context.Context, sess *store.Session, utt companion.Utterance) (*companion.Outcome, error) {
	sess.LastUtterance = utt.Text

	if e.machine.Awaiting(sess) {
		return e.resolveConfirmation(ctx, sess, utt)
	}

	patientId, err := uuid.Parse(sess.PatientID)
	if err != nil {
		return nil, fmt.Errorf("pipeline: invalid patient id %q: %w", sess.PatientID, err)
	}

	// Crisis escalation always runs before any alerting decision.
	if phrases, found := e.crisisFilter.Scan(utt.Text); found {
		return e.handleCrisis(ctx, sess, patientId, utt, phrases)
	}

	res := e.classifier.Classify(utt.Text)
	switch res.Intent {
	case companion.IntentSOS:
		return e.beginConfirmation(sess, companion.ActionSOS, utt.Text)
	case companion.IntentNote:
		return e.beginConfirmation(sess, companion.ActionNote, confirm.ExtractNotePayload(utt.Text))
	}

	return e.handleEmotion(ctx, sess, patientId, utt)
}

func (e *Engine) handleCrisis(ctx context.Context, sess *store.Session, patientId uuid.UUID, utt companion.Utterance, phrases []string) (*companion.Outcome, error) {
	sig := e.classifier.Classify(utt.Text).EmotionSignal()
	e.crisisFilter.Escalate(sig)
	e.logger.Printf("[PIPELINE] crisis phrases detected for patient %s: %v", patientId, phrases)

	e.recordRisk(ctx, sess, patientId, companion.RiskHigh)

	metadata := signalMetadata(sig, utt.Text)
	metadata["phrases"] = phrases

	alert, suppression, err := e.dispatcher.Dispatch(ctx, dispatch.Request{
		PatientId:   patientId,
		Crisis:      true,
		Title:       "CRITICAL: Suicidal ideation detected",
		Description: fmt.Sprintf("Patient expressing suicidal ideation (%.0f%% confidence). Immediate attention required.", sig.Confidence*100),
		Metadata:    metadata,
	})
	if err != nil {
		// The signal itself still reaches the caller; swallowing a
		// crisis dispatch failure is unacceptable.
		return nil, err
	}
	if suppression != nil {
		return &companion.Outcome{
			Type:        companion.OutcomeAlertSuppressed,
			Signal:      sig,
			Suppression: suppression,
			Reply:       crisisReply,
		}, nil
	}
	return &companion.Outcome{
		Type:   companion.OutcomeAlertDispatched,
		Signal: sig,
		Alert:  alert,
		Reply:  crisisReply,
	}, nil
}

func (e *Engine) beginConfirmation(sess *store.Session, actionType companion.ActionType, payload string) (*companion.Outcome, error) {
	pending, err := e.machine.Begin(sess, actionType, payload)
	if err != nil {
		return nil, err
	}
	return &companion.Outcome{
		Type:    companion.OutcomeNeedsConfirmation,
		Pending: pending,
		Reply:   confirmationPrompt(actionType, payload),
	}, nil
}

func (e *Engine) resolveConfirmation(ctx context.Context, sess *store.Session, utt companion.Utterance) (*companion.Outcome, error) {
	pending, answer := e.machine.Resolve(sess, utt.Text)

	switch answer {
	case confirm.AnswerUnclear:
		return &companion.Outcome{
			Type:     companion.OutcomeNeedsConfirmation,
			Pending:  pending,
			Reprompt: true,
			Reply:    "I didn't catch that. Please say yes to confirm, or no to cancel.",
		}, nil

	case confirm.AnswerNo:
		return &companion.Outcome{
			Type:    companion.OutcomeActionCancelled,
			Pending: pending,
			Reply:   "Okay, I won't do that.",
		}, nil
	}

	// Confirmed.
	patientId, err := uuid.Parse(sess.PatientID)
	if err != nil {
		return nil, fmt.Errorf("pipeline: invalid patient id %q: %w", sess.PatientID, err)
	}

	switch pending.Type {
	case companion.ActionSOS:
		alert, suppression, err := e.dispatcher.Dispatch(ctx, dispatch.Request{
			PatientId:   patientId,
			Category:    companion.CategorySOS,
			Severity:    companion.SeverityHigh,
			Title:       "Emergency SOS",
			Description: fmt.Sprintf("Patient requested emergency help: %q", pending.Payload),
			Metadata:    map[string]interface{}{"source": "voice_assistant", "transcript": preview(pending.Payload)},
		})
		if err != nil {
			return nil, err
		}
		if suppression != nil {
			return &companion.Outcome{
				Type:        companion.OutcomeAlertSuppressed,
				Pending:     pending,
				Suppression: suppression,
				Reply:       "Your caregiver was already alerted moments ago. Help is on the way.",
			}, nil
		}
		return &companion.Outcome{
			Type:    companion.OutcomeAlertDispatched,
			Pending: pending,
			Alert:   alert,
			Reply:   "I've alerted your caregiver. Help is on the way.",
		}, nil

	case companion.ActionNote:
		noteId, err := e.notes.CreateNote(ctx, patientId, pending.Payload)
		if err != nil {
			return nil, fmt.Errorf("pipeline: saving confirmed note: %w", err)
		}
		return &companion.Outcome{
			Type:    companion.OutcomeActionCompleted,
			Pending: pending,
			NoteId:  noteId,
			Reply:   "Your note has been saved.",
		}, nil
	}

	return nil, fmt.Errorf("pipeline: unknown pending action type %q", pending.Type)
}

func (e *Engine) handleEmotion(ctx context.Context, sess *store.Session, patientId uuid.UUID, utt companion.Utterance) (*companion.Outcome, error) {
	sig, err := e.arbiter.Resolve(ctx, utt)
	if err != nil {
		// No usable source. Callers take no action; a fabricated
		// Neutral would mask the failure as a benign mood.
		return nil, err
	}

	e.recordRisk(ctx, sess, patientId, risk.Assess(utt.Text))

	severity, alertable := emotionSeverity(sig)
	if !alertable || sig.Confidence < alertFloor {
		return &companion.Outcome{
			Type:   companion.OutcomeSignal,
			Signal: sig,
			Reply:  emotionReply(sig.Label),
		}, nil
	}

	alert, suppression, err := e.dispatcher.Dispatch(ctx, dispatch.Request{
		PatientId:   patientId,
		Category:    companion.CategoryEmotionalConcern,
		Severity:    severity,
		Title:       fmt.Sprintf("Emotional alert: %s", sig.Label),
		Description: fmt.Sprintf("Patient is expressing %s (%.0f%% confidence). Voice assistant detected a concerning emotional state.", sig.Label, sig.Confidence*100),
		Metadata:    signalMetadata(sig, utt.Text),
	})
	if err != nil {
		return nil, err
	}
	if suppression != nil {
		return &companion.Outcome{
			Type:        companion.OutcomeAlertSuppressed,
			Signal:      sig,
			Suppression: suppression,
			Reply:       emotionReply(sig.Label),
		}, nil
	}
	return &companion.Outcome{
		Type:   companion.OutcomeAlertDispatched,
		Signal: sig,
		Alert:  alert,
		Reply:  emotionReply(sig.Label),
	}, nil
}

// recordRisk persists the higher of stored vs. newly observed risk.
// A later LOW never downgrades a previously recorded HIGH.
func (e *Engine) recordRisk(ctx context.Context, sess *store.Session, patientId uuid.UUID, observed companion.RiskLevel) {
	stored, err := e.conversations.GetConversationRisk(ctx, patientId)
	if err != nil {
		e.logger.Printf("[PIPELINE] reading conversation risk: %v", err)
		stored = sess.Risk
	}
	next := companion.MaxRisk(stored, observed)
	if next == stored && sess.Risk == stored {
		sess.Risk = next
		return
	}
	if err := e.conversations.SetConversationRisk(ctx, patientId, next); err != nil {
		e.logger.Printf("[PIPELINE] persisting conversation risk: %v", err)
		return
	}
	sess.Risk = next
}

// emotionSeverity maps an emotion label onto an alert severity.
// Positive and neutral emotions never alert. Critical signals always
// clear the HIGH floor.
func emotionSeverity(sig *companion.Signal) (companion.AlertSeverity, bool) {
	switch sig.Label {
	case companion.EmotionSad:
		return companion.SeverityMedium, true
	case companion.EmotionStressed:
		severity := companion.SeverityHigh
		if sig.Critical {
			severity = companion.MaxSeverity(severity, companion.SeverityCritical)
		}
		return severity, true
	default:
		return companion.SeverityLow, false
	}
}

func signalMetadata(sig *companion.Signal, transcript string) map[string]interface{} {
	return map[string]interface{}{
		"emotion":            sig.Label,
		"confidence":         sig.Confidence,
		"source":             sig.Source,
		"critical":           sig.Critical,
		"transcript_preview": preview(transcript),
	}
}

// preview truncates on a rune boundary; the result lands in alert
// metadata JSON and must stay valid UTF-8.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return text
}
