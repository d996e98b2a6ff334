package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/memory"
	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/classify"
	"eldercare-assist-be/pkg/companion/confirm"
	"eldercare-assist-be/pkg/companion/crisis"
	"eldercare-assist-be/pkg/companion/dispatch"
	"eldercare-assist-be/pkg/companion/emotion"
	"eldercare-assist-be/pkg/companion/pipeline"
	"eldercare-assist-be/pkg/speech"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMedicalQuestion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"dosage question", "What dosage of lisinopril should I use?", true},
		{"should i take", "Should I take my pills with food?", true},
		{"diagnosis request", "Can you diagnose this rash?", true},
		{"side effects", "Does this have a side effect?", true},
		{"case insensitive", "WHAT IS THE RIGHT DOSE?", true},
		{"smalltalk", "I had a lovely walk this morning", false},
		{"mentions medicine neutrally", "I already took my medicine today", false},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := isMedicalQuestion(tc.text); got != tc.want {
				t.Errorf("isMedicalQuestion(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

// fakeConversationService backs the chat tests with one in-memory
// conversation per patient.
type fakeConversationService struct {
	conv     *entity.Conversation
	messages []string
	risk     companion.RiskLevel
	ended    bool
}

func (f *fakeConversationService) GetOrCreate(ctx context.Context, patientId uuid.UUID) (*entity.Conversation, error) {
	if f.conv == nil || f.ended {
		f.conv = &entity.Conversation{
			Id:        uuid.New(),
			PatientId: patientId,
			RiskLevel: string(companion.RiskLow),
			StartedAt: time.Now(),
		}
		f.risk = companion.RiskLow
		f.ended = false
	}
	return f.conv, nil
}

func (f *fakeConversationService) End(ctx context.Context, patientId uuid.UUID) error {
	if f.conv == nil || f.ended {
		return errors.New("no active conversation")
	}
	f.ended = true
	now := time.Now()
	f.conv.EndedAt = &now
	return nil
}

func (f *fakeConversationService) AddMessage(ctx context.Context, conversationId uuid.UUID, sender entity.MessageSender, content string, emotion *string) error {
	f.messages = append(f.messages, content)
	return nil
}

func (f *fakeConversationService) History(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.ConversationMessage, error) {
	return nil, nil
}

func (f *fakeConversationService) GetConversationRisk(ctx context.Context, patientId uuid.UUID) (companion.RiskLevel, error) {
	if f.risk == "" {
		return companion.RiskLow, nil
	}
	return f.risk, nil
}

func (f *fakeConversationService) SetConversationRisk(ctx context.Context, patientId uuid.UUID, level companion.RiskLevel) error {
	f.risk = level
	return nil
}

type chatNoteStore struct{}

func (chatNoteStore) CreateNote(ctx context.Context, patientId uuid.UUID, content string) (uuid.UUID, error) {
	return uuid.New(), nil
}

func newChatHarness(t *testing.T) (ICompanionService, *capturingAlertStore, *fakeConversationService, *memory.SessionRepository) {
	t.Helper()
	plog := log.New(io.Discard, "", 0)
	classifier := classify.New()
	crisisFilter := crisis.NewFilter()
	alerts := &capturingAlertStore{}
	convs := &fakeConversationService{}

	engine := pipeline.NewEngine(
		classifier,
		crisisFilter,
		emotion.NewArbiter(classifier, speech.NewSimulatedProvider(), plog),
		confirm.NewMachine(confirm.DefaultTTL, plog),
		dispatch.NewDispatcher(dispatch.NewMemoryCooldownStore(), alerts, plog),
		chatNoteStore{},
		convs,
		plog,
	)

	sessions := memory.NewSessionRepository()
	svc := NewCompanionService(engine, crisisFilter, convs, sessions, nopLogger{})
	return svc, alerts, convs, sessions
}

func TestSendChatCrisisOverridesMedicalGuard(t *testing.T) {
	svc, alerts, convs, _ := newChatHarness(t)
	patientId := uuid.New()

	res, err := svc.SendChat(context.Background(), patientId, &dto.ChatRequest{
		Message: "Can I take all my pills at once? I want to end my life",
	})
	require.NoError(t, err)

	// The medical keyword must not short-circuit the escalation.
	assert.Equal(t, string(companion.OutcomeAlertDispatched), res.Outcome)
	assert.NotEqual(t, medicalRefusal, res.Reply)
	assert.Equal(t, string(companion.RiskHigh), res.RiskLevel)

	require.Len(t, alerts.alerts, 1)
	alert := alerts.alerts[0]
	assert.Equal(t, companion.CategoryMentalHealth, alert.Category)
	assert.Equal(t, companion.SeverityCritical, alert.Severity)
	assert.Equal(t, companion.RiskHigh, convs.risk)
}

func TestSendChatMedicalQuestionRefusedWithoutAlert(t *testing.T) {
	svc, alerts, _, _ := newChatHarness(t)

	res, err := svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		Message: "What dosage should I take tonight?",
	})
	require.NoError(t, err)

	assert.Equal(t, medicalRefusal, res.Reply)
	assert.Equal(t, string(companion.OutcomeSignal), res.Outcome)
	assert.Empty(t, alerts.alerts)
}

func TestEndChatClearsSessionAndConversation(t *testing.T) {
	svc, _, convs, sessions := newChatHarness(t)
	patientId := uuid.New()

	_, err := svc.SendChat(context.Background(), patientId, &dto.ChatRequest{
		Message: "I had a lovely walk this morning",
	})
	require.NoError(t, err)
	_, found := sessions.GetByPatient(patientId.String())
	require.True(t, found)

	require.NoError(t, svc.EndChat(context.Background(), patientId))
	assert.True(t, convs.ended)
	_, found = sessions.GetByPatient(patientId.String())
	assert.False(t, found)

	// A second end has nothing to close.
	assert.Error(t, svc.EndChat(context.Background(), patientId))
}
