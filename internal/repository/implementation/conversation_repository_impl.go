package implementation

import (
	"context"
	"errors"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/mapper"
	"eldercare-assist-be/internal/model"
	"eldercare-assist-be/internal/repository/contract"
	"eldercare-assist-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Create(ctx context.Context, conv *entity.Conversation) error {
	m := r.mapper.ToModel(conv)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*conv = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) Update(ctx context.Context, conv *entity.Conversation) error {
	m := r.mapper.ToModel(conv)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*conv = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) UpdateRisk(ctx context.Context, id uuid.UUID, riskLevel string) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("risk_level", riskLevel).Error
}

func (r *ConversationRepositoryImpl) End(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", id).
		Update("ended_at", endedAt).Error
}

func (r *ConversationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	var m model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var models []*model.Conversation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.Conversation, len(models))
	for i, m := range models {
		out[i] = r.mapper.ToEntity(m)
	}
	return out, nil
}

func (r *ConversationRepositoryImpl) AddMessage(ctx context.Context, msg *entity.ConversationMessage) error {
	m := r.mapper.MessageToModel(msg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.MessageToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error) {
	var models []*model.ConversationMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MessagesToEntities(models), nil
}
