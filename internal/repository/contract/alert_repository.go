package contract

import (
	"context"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	Resolve(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, at time.Time) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Alert, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Alert, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
