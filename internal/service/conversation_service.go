package service

import (
	"context"
	"errors"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/pkg/companion"

	"github.com/google/uuid"
)

// IConversationService backs the pipeline's per-conversation risk store
// and the companion chat history.
type IConversationService interface {
	GetOrCreate(ctx context.Context, patientId uuid.UUID) (*entity.Conversation, error)
	End(ctx context.Context, patientId uuid.UUID) error
	AddMessage(ctx context.Context, conversationId uuid.UUID, sender entity.MessageSender, content string, emotion *string) error
	History(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.ConversationMessage, error)

	GetConversationRisk(ctx context.Context, patientId uuid.UUID) (companion.RiskLevel, error)
	SetConversationRisk(ctx context.Context, patientId uuid.UUID, level companion.RiskLevel) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory) IConversationService {
	return &conversationService{uowFactory: uowFactory}
}

// GetOrCreate returns the patient's open conversation, starting one if
// none exists or the latest was ended. A single open conversation per
// patient keeps the risk ratchet scoped the way caregivers review it.
func (s *conversationService) GetOrCreate(ctx context.Context, patientId uuid.UUID) (*entity.Conversation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conv, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if conv != nil && conv.EndedAt == nil {
		return conv, nil
	}

	conv = &entity.Conversation{
		Id:            uuid.New(),
		PatientId:     patientId,
		RiskLevel:     string(companion.RiskLow),
		StartedAt:     time.Now(),
		LastMessageAt: time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// End closes the patient's open conversation. The next utterance starts
// a fresh conversation with the risk ratchet reset to LOW.
func (s *conversationService) End(ctx context.Context, patientId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conv, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return err
	}
	if conv == nil || conv.EndedAt != nil {
		return errors.New("no active conversation")
	}
	return uow.ConversationRepository().End(ctx, conv.Id, time.Now())
}

func (s *conversationService) AddMessage(ctx context.Context, conversationId uuid.UUID, sender entity.MessageSender, content string, emotion *string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	msg := &entity.ConversationMessage{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Sender:         sender,
		Content:        content,
		Emotion:        emotion,
		CreatedAt:      time.Now(),
	}
	return uow.ConversationRepository().AddMessage(ctx, msg)
}

func (s *conversationService) History(ctx context.Context, conversationId uuid.UUID, limit int) ([]*entity.ConversationMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{
		specification.FilterBy{Field: "conversation_id", Value: conversationId},
		specification.OrderBy{Field: "created_at", Desc: false},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit})
	}
	return uow.ConversationRepository().FindMessages(ctx, specs...)
}

func (s *conversationService) GetConversationRisk(ctx context.Context, patientId uuid.UUID) (companion.RiskLevel, error) {
	conv, err := s.GetOrCreate(ctx, patientId)
	if err != nil {
		return companion.RiskLow, err
	}
	return companion.RiskLevel(conv.RiskLevel), nil
}

func (s *conversationService) SetConversationRisk(ctx context.Context, patientId uuid.UUID, level companion.RiskLevel) error {
	conv, err := s.GetOrCreate(ctx, patientId)
	if err != nil {
		return err
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ConversationRepository().UpdateRisk(ctx, conv.Id, string(level))
}
