package contract

import (
	"context"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) error
	Update(ctx context.Context, conv *entity.Conversation) error
	UpdateRisk(ctx context.Context, id uuid.UUID, riskLevel string) error
	End(ctx context.Context, id uuid.UUID, endedAt time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)

	AddMessage(ctx context.Context, msg *entity.ConversationMessage) error
	FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error)
}
