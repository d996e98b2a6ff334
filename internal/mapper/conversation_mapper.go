package mapper

import (
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:            c.Id,
		PatientId:     c.PatientId,
		RiskLevel:     c.RiskLevel,
		StartedAt:     c.StartedAt,
		LastMessageAt: c.LastMessageAt,
		EndedAt:       c.EndedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:            c.Id,
		PatientId:     c.PatientId,
		RiskLevel:     c.RiskLevel,
		StartedAt:     c.StartedAt,
		LastMessageAt: c.LastMessageAt,
		EndedAt:       c.EndedAt,
	}
}

func (m *ConversationMapper) MessageToEntity(msg *model.ConversationMessage) *entity.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &entity.ConversationMessage{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Sender:         entity.MessageSender(msg.Sender),
		Content:        msg.Content,
		Emotion:        msg.Emotion,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.ConversationMessage) *model.ConversationMessage {
	if msg == nil {
		return nil
	}
	return &model.ConversationMessage{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Sender:         string(msg.Sender),
		Content:        msg.Content,
		Emotion:        msg.Emotion,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessagesToEntities(msgs []*model.ConversationMessage) []*entity.ConversationMessage {
	entities := make([]*entity.ConversationMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
