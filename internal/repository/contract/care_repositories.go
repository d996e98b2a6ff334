package contract

import (
	"context"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MoodRepository interface {
	Create(ctx context.Context, mood *entity.MoodEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MoodEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ReminderRepository interface {
	Create(ctx context.Context, reminder *entity.Reminder) error
	Update(ctx context.Context, reminder *entity.Reminder) error
	Acknowledge(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkMissedAlerted(ctx context.Context, id uuid.UUID, at time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reminder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reminder, error)
}

type TimelineRepository interface {
	Create(ctx context.Context, event *entity.TimelineEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TimelineEvent, error)
}

type VoiceCommandRepository interface {
	Create(ctx context.Context, cmd *entity.VoiceCommand) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VoiceCommand, error)
}
