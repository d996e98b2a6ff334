package service

import (
	"context"
	"strings"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/pkg/logger"
	"eldercare-assist-be/internal/repository/memory"
	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/crisis"
	"eldercare-assist-be/pkg/companion/pipeline"
	"eldercare-assist-be/pkg/store"

	"github.com/google/uuid"
)

type ICompanionService interface {
	SendChat(ctx context.Context, patientId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	EndChat(ctx context.Context, patientId uuid.UUID) error
	GetChatHistory(ctx context.Context, patientId uuid.UUID, limit int) ([]*dto.ChatMessageResponse, error)
}

// medicalTopics trip the refusal guard. The companion never gives
// medical advice; it redirects to the care team instead.
var medicalTopics = []string{
	"dosage", "dose", "prescription", "medication advice",
	"should i take", "can i take", "diagnose", "diagnosis",
	"is it safe to take", "side effect",
}

const medicalRefusal = "I can't give medical advice, but your care team can. Would you like me to note this down so they see it?"

type companionService struct {
	engine        *pipeline.Engine
	crisisFilter  *crisis.Filter
	conversations IConversationService
	sessions      *memory.SessionRepository
	logger        logger.ILogger
}

func NewCompanionService(
	engine *pipeline.Engine,
	crisisFilter *crisis.Filter,
	conversations IConversationService,
	sessions *memory.SessionRepository,
	log logger.ILogger,
) ICompanionService {
	return &companionService{
		engine:        engine,
		crisisFilter:  crisisFilter,
		conversations: conversations,
		sessions:      sessions,
		logger:        log,
	}
}

func (cs *companionService) SendChat(ctx context.Context, patientId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	conv, err := cs.conversations.GetOrCreate(ctx, patientId)
	if err != nil {
		return nil, err
	}

	if err := cs.conversations.AddMessage(ctx, conv.Id, entity.SenderPatient, req.Message, nil); err != nil {
		return nil, err
	}

	// Medical questions are refused before classification so a question
	// about medication never becomes a note or an alert by accident.
	// Crisis language overrides the guard: those messages always go
	// through the full pipeline so the escalation is never suppressed.
	if _, inCrisis := cs.crisisFilter.Scan(req.Message); !inCrisis && isMedicalQuestion(req.Message) {
		if err := cs.conversations.AddMessage(ctx, conv.Id, entity.SenderAssistant, medicalRefusal, nil); err != nil {
			cs.logger.Warn("companion", "Failed to persist refusal reply", map[string]interface{}{"error": err.Error()})
		}
		risk, _ := cs.conversations.GetConversationRisk(ctx, patientId)
		return &dto.ChatResponse{
			Reply:     medicalRefusal,
			RiskLevel: string(risk),
			Outcome:   string(companion.OutcomeSignal),
		}, nil
	}

	sess, found := cs.sessions.GetByPatient(patientId.String())
	if !found {
		sess = &store.Session{
			ID:             uuid.New().String(),
			PatientID:      patientId.String(),
			State:          store.StateIdle,
			ConversationID: conv.Id.String(),
			Risk:           companion.RiskLevel(conv.RiskLevel),
		}
	}

	utt := companion.Utterance{Text: req.Message, At: time.Now()}
	outcome, err := cs.engine.Process(ctx, sess, utt)
	if err != nil {
		cs.sessions.Save(sess)
		return nil, err
	}
	cs.sessions.Save(sess)

	var emotion *string
	var emotionLabel string
	if outcome.Signal != nil && outcome.Signal.Kind == companion.SignalEmotion {
		emotionLabel = outcome.Signal.Label
		emotion = &emotionLabel
	}

	if outcome.Reply != "" {
		if err := cs.conversations.AddMessage(ctx, conv.Id, entity.SenderAssistant, outcome.Reply, emotion); err != nil {
			cs.logger.Warn("companion", "Failed to persist assistant reply", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.ChatResponse{
		Reply:     outcome.Reply,
		Emotion:   emotionLabel,
		RiskLevel: string(sess.Risk),
		Outcome:   string(outcome.Type),
	}, nil
}

// EndChat closes the open conversation and drops the in-memory session,
// clearing any pending confirmation with it.
func (cs *companionService) EndChat(ctx context.Context, patientId uuid.UUID) error {
	if err := cs.conversations.End(ctx, patientId); err != nil {
		return err
	}
	if sess, found := cs.sessions.GetByPatient(patientId.String()); found {
		cs.sessions.Delete(sess.ID)
	}
	return nil
}

func (cs *companionService) GetChatHistory(ctx context.Context, patientId uuid.UUID, limit int) ([]*dto.ChatMessageResponse, error) {
	conv, err := cs.conversations.GetOrCreate(ctx, patientId)
	if err != nil {
		return nil, err
	}
	msgs, err := cs.conversations.History(ctx, conv.Id, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp := &dto.ChatMessageResponse{
			Id:        m.Id,
			Sender:    string(m.Sender),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		}
		if m.Emotion != nil {
			resp.Emotion = *m.Emotion
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func isMedicalQuestion(text string) bool {
	lowered := strings.ToLower(text)
	for _, topic := range medicalTopics {
		if strings.Contains(lowered, topic) {
			return true
		}
	}
	return false
}
