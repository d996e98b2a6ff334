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

type AlertRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AlertMapper
}

func NewAlertRepository(db *gorm.DB) contract.AlertRepository {
	return &AlertRepositoryImpl{
		db:     db,
		mapper: mapper.NewAlertMapper(),
	}
}

func (r *AlertRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AlertRepositoryImpl) Create(ctx context.Context, alert *entity.Alert) error {
	m := r.mapper.ToModel(alert)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*alert = *r.mapper.ToEntity(m)
	return nil
}

func (r *AlertRepositoryImpl) Resolve(ctx context.Context, id uuid.UUID, resolvedBy uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Alert{}).
		Where("id = ? AND status = ?", id, "ACTIVE").
		Updates(map[string]interface{}{
			"status":      "RESOLVED",
			"resolved_at": at,
			"resolved_by": resolvedBy,
		}).Error
}

func (r *AlertRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Alert, error) {
	var m model.Alert
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AlertRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Alert, error) {
	var models []*model.Alert
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AlertRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Alert{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
