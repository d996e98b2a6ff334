package pipeline

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/classify"
	"eldercare-assist-be/pkg/companion/confirm"
	"eldercare-assist-be/pkg/companion/crisis"
	"eldercare-assist-be/pkg/companion/dispatch"
	"eldercare-assist-be/pkg/companion/emotion"
	"eldercare-assist-be/pkg/speech"
	"eldercare-assist-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlertStore struct {
	alerts []*companion.Alert
}

func (s *fakeAlertStore) CreateAlert(ctx context.Context, alert *companion.Alert) (uuid.UUID, error) {
	s.alerts = append(s.alerts, alert)
	return alert.Id, nil
}

type fakeNoteStore struct {
	notes []string
}

func (s *fakeNoteStore) CreateNote(ctx context.Context, patientId uuid.UUID, content string) (uuid.UUID, error) {
	s.notes = append(s.notes, content)
	return uuid.New(), nil
}

type fakeConversationStore struct {
	risk companion.RiskLevel
}

func (s *fakeConversationStore) GetConversationRisk(ctx context.Context, patientId uuid.UUID) (companion.RiskLevel, error) {
	if s.risk == "" {
		return companion.RiskLow, nil
	}
	return s.risk, nil
}

func (s *fakeConversationStore) SetConversationRisk(ctx context.Context, patientId uuid.UUID, level companion.RiskLevel) error {
	s.risk = level
	return nil
}

type harness struct {
	engine        *Engine
	sess          *store.Session
	alerts        *fakeAlertStore
	notes         *fakeNoteStore
	conversations *fakeConversationStore
}

func newHarness(t *testing.T, cooldowns dispatch.CooldownStore) *harness {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	classifier := classify.New()

	alerts := &fakeAlertStore{}
	notes := &fakeNoteStore{}
	conversations := &fakeConversationStore{}

	if cooldowns == nil {
		cooldowns = dispatch.NewMemoryCooldownStore()
	}

	engine := NewEngine(
		classifier,
		crisis.NewFilter(),
		emotion.NewArbiter(classifier, speech.NewSimulatedProvider(), logger),
		confirm.NewMachine(confirm.DefaultTTL, logger),
		dispatch.NewDispatcher(cooldowns, alerts, logger),
		notes,
		conversations,
		logger,
	)

	return &harness{
		engine: engine,
		sess: &store.Session{
			ID:        uuid.NewString(),
			PatientID: uuid.NewString(),
			State:     store.StateIdle,
			Risk:      companion.RiskLow,
		},
		alerts:        alerts,
		notes:         notes,
		conversations: conversations,
	}
}

func (h *harness) say(t *testing.T, text string) *companion.Outcome {
	t.Helper()
	out, err := h.engine.Process(context.Background(), h.sess, companion.Utterance{Text: text, At: time.Now()})
	require.NoError(t, err)
	return out
}

func TestCrisisUtteranceEscalatesImmediately(t *testing.T) {
	h := newHarness(t, nil)

	out := h.say(t, "I want to end my life")

	require.Equal(t, companion.OutcomeAlertDispatched, out.Type)
	require.NotNil(t, out.Alert)
	assert.Equal(t, companion.CategoryMentalHealth, out.Alert.Category)
	assert.Equal(t, companion.SeverityCritical, out.Alert.Severity)

	require.NotNil(t, out.Signal)
	assert.Equal(t, companion.EmotionStressed, out.Signal.Label)
	assert.GreaterOrEqual(t, out.Signal.Confidence, 0.90)
	assert.True(t, out.Signal.Critical)

	// A crisis marks the whole conversation high risk.
	assert.Equal(t, companion.RiskHigh, h.sess.Risk)
}

func TestCrisisAlertMetadataCarriesPhrases(t *testing.T) {
	h := newHarness(t, nil)

	out := h.say(t, "I want to end my life")

	require.NotNil(t, out.Alert)
	phrases, ok := out.Alert.Metadata["phrases"].([]string)
	require.True(t, ok)
	assert.Contains(t, phrases, "end my life")
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 150)

	got := preview(long)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 100, utf8.RuneCountInString(got))
	assert.Equal(t, "short text", preview("short text"))
}

func TestSOSConfirmationFlow(t *testing.T) {
	h := newHarness(t, nil)

	out := h.say(t, "help, emergency")
	require.Equal(t, companion.OutcomeNeedsConfirmation, out.Type)
	require.NotNil(t, out.Pending)
	assert.Equal(t, companion.ActionSOS, out.Pending.Type)
	assert.Empty(t, h.alerts.alerts, "no alert before confirmation")

	out = h.say(t, "yes")
	require.Equal(t, companion.OutcomeAlertDispatched, out.Type)
	require.NotNil(t, out.Alert)
	assert.Equal(t, companion.CategorySOS, out.Alert.Category)
	assert.Equal(t, companion.SeverityHigh, out.Alert.Severity)
	assert.Len(t, h.alerts.alerts, 1)
}

func TestRepeatSOSIsSuppressed(t *testing.T) {
	h := newHarness(t, nil)

	h.say(t, "help, emergency")
	h.say(t, "yes")
	require.Len(t, h.alerts.alerts, 1)

	// The patient repeats the request within the cooldown window.
	out := h.say(t, "help")
	require.Equal(t, companion.OutcomeNeedsConfirmation, out.Type)
	out = h.say(t, "yes")

	require.Equal(t, companion.OutcomeAlertSuppressed, out.Type)
	require.NotNil(t, out.Suppression)
	assert.Equal(t, companion.CategorySOS, out.Suppression.Category)
	assert.Greater(t, out.Suppression.RetryAfterMs(), int64(0))
	assert.LessOrEqual(t, out.Suppression.RetryAfterMs(), int64(120000))
	assert.Len(t, h.alerts.alerts, 1, "suppressed dispatch must not persist a second alert")
}

func TestNoteConfirmationFlow(t *testing.T) {
	h := newHarness(t, nil)

	out := h.say(t, "create a note that I'm feeling dizzy")
	require.Equal(t, companion.OutcomeNeedsConfirmation, out.Type)
	require.NotNil(t, out.Pending)
	assert.Equal(t, companion.ActionNote, out.Pending.Type)
	assert.Equal(t, "I'm feeling dizzy", out.Pending.Payload)
	assert.Empty(t, h.notes.notes, "no note before confirmation")

	out = h.say(t, "yes")
	require.Equal(t, companion.OutcomeActionCompleted, out.Type)
	assert.NotEqual(t, uuid.Nil, out.NoteId)
	require.Len(t, h.notes.notes, 1, "note must be created exactly once")
	assert.Equal(t, "I'm feeling dizzy", h.notes.notes[0])
}

func TestNoteCancelled(t *testing.T) {
	h := newHarness(t, nil)

	h.say(t, "take a note that the stove was left on")
	out := h.say(t, "no")

	require.Equal(t, companion.OutcomeActionCancelled, out.Type)
	assert.Empty(t, h.notes.notes)
	assert.Equal(t, store.StateIdle, h.sess.State)
}

func TestUnclearAnswerReprompts(t *testing.T) {
	h := newHarness(t, nil)

	h.say(t, "help, emergency")
	out := h.say(t, "what time is it")

	require.Equal(t, companion.OutcomeNeedsConfirmation, out.Type)
	assert.True(t, out.Reprompt)
	assert.Empty(t, h.alerts.alerts)
	assert.Equal(t, store.StateAwaitingConfirmation, h.sess.State)

	// A clear answer on the next turn still resolves the same action.
	out = h.say(t, "yes")
	require.Equal(t, companion.OutcomeAlertDispatched, out.Type)
}

func TestSadEmotionDispatchesMediumAlert(t *testing.T) {
	h := newHarness(t, nil)

	out := h.say(t, "I'm so sad and lonely")

	require.Equal(t, companion.OutcomeAlertDispatched, out.Type)
	require.NotNil(t, out.Alert)
	assert.Equal(t, companion.CategoryEmotionalConcern, out.Alert.Category)
	assert.Equal(t, companion.SeverityMedium, out.Alert.Severity)
	require.NotNil(t, out.Signal)
	assert.Equal(t, companion.EmotionSad, out.Signal.Label)
}

func TestHappyEmotionIsSignalOnly(t *testing.T) {
	h := newHarness(t, nil)

	out := h.say(t, "I feel wonderful today")

	require.Equal(t, companion.OutcomeSignal, out.Type)
	require.NotNil(t, out.Signal)
	assert.Equal(t, companion.EmotionHappy, out.Signal.Label)
	assert.Empty(t, h.alerts.alerts)
}

func TestNeutralUtteranceIsSignalOnly(t *testing.T) {
	h := newHarness(t, nil)

	out := h.say(t, "the bus arrives at nine")

	require.Equal(t, companion.OutcomeSignal, out.Type)
	assert.Equal(t, companion.EmotionNeutral, out.Signal.Label)
	assert.Empty(t, h.alerts.alerts)
}

func TestRiskNeverDowngrades(t *testing.T) {
	h := newHarness(t, nil)

	h.say(t, "I'm sad and lonely, and the pain is getting worse")
	assert.Equal(t, companion.RiskHigh, h.sess.Risk)

	h.say(t, "I feel wonderful today")
	assert.Equal(t, companion.RiskHigh, h.sess.Risk, "later calm talk must not lower recorded risk")
	assert.Equal(t, companion.RiskHigh, h.conversations.risk)
}

func TestEmptyUtteranceReturnsError(t *testing.T) {
	h := newHarness(t, nil)

	out, err := h.engine.Process(context.Background(), h.sess, companion.Utterance{})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, emotion.ErrNoSignal)
	assert.Empty(t, h.alerts.alerts)
}

func TestAnswerWhileAwaitingIsNotReclassified(t *testing.T) {
	h := newHarness(t, nil)

	h.say(t, "make a note that I need more bandages")
	// "no" alone could read as a cancel or as small talk; while the slot
	// is occupied it is always the answer.
	out := h.say(t, "no")

	require.Equal(t, companion.OutcomeActionCancelled, out.Type)
	assert.Empty(t, h.notes.notes)
	assert.Empty(t, h.alerts.alerts)
}
