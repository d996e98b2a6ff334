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

func applySpecs(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Mood

type MoodRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareMapper
}

func NewMoodRepository(db *gorm.DB) contract.MoodRepository {
	return &MoodRepositoryImpl{db: db, mapper: mapper.NewCareMapper()}
}

func (r *MoodRepositoryImpl) Create(ctx context.Context, mood *entity.MoodEntry) error {
	m := r.mapper.MoodToModel(mood)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mood = *r.mapper.MoodToEntity(m)
	return nil
}

func (r *MoodRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MoodEntry, error) {
	var models []*model.MoodEntry
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MoodsToEntities(models), nil
}

func (r *MoodRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecs(r.db.WithContext(ctx).Model(&model.MoodEntry{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Reminder

type ReminderRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareMapper
}

func NewReminderRepository(db *gorm.DB) contract.ReminderRepository {
	return &ReminderRepositoryImpl{db: db, mapper: mapper.NewCareMapper()}
}

func (r *ReminderRepositoryImpl) Create(ctx context.Context, reminder *entity.Reminder) error {
	m := r.mapper.ReminderToModel(reminder)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*reminder = *r.mapper.ReminderToEntity(m)
	return nil
}

func (r *ReminderRepositoryImpl) Update(ctx context.Context, reminder *entity.Reminder) error {
	m := r.mapper.ReminderToModel(reminder)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*reminder = *r.mapper.ReminderToEntity(m)
	return nil
}

func (r *ReminderRepositoryImpl) Acknowledge(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("id = ? AND acknowledged_at IS NULL", id).
		Update("acknowledged_at", at).Error
}

func (r *ReminderRepositoryImpl) MarkMissedAlerted(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("id = ? AND missed_alerted_at IS NULL", id).
		Update("missed_alerted_at", at).Error
}

func (r *ReminderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reminder, error) {
	var m model.Reminder
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ReminderToEntity(&m), nil
}

func (r *ReminderRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reminder, error) {
	var models []*model.Reminder
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.RemindersToEntities(models), nil
}

// Timeline

type TimelineRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareMapper
}

func NewTimelineRepository(db *gorm.DB) contract.TimelineRepository {
	return &TimelineRepositoryImpl{db: db, mapper: mapper.NewCareMapper()}
}

func (r *TimelineRepositoryImpl) Create(ctx context.Context, event *entity.TimelineEvent) error {
	m := r.mapper.TimelineToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.TimelineToEntity(m)
	return nil
}

func (r *TimelineRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TimelineEvent, error) {
	var models []*model.TimelineEvent
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TimelineToEntities(models), nil
}

// VoiceCommand

type VoiceCommandRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareMapper
}

func NewVoiceCommandRepository(db *gorm.DB) contract.VoiceCommandRepository {
	return &VoiceCommandRepositoryImpl{db: db, mapper: mapper.NewCareMapper()}
}

func (r *VoiceCommandRepositoryImpl) Create(ctx context.Context, cmd *entity.VoiceCommand) error {
	m := r.mapper.VoiceCommandToModel(cmd)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*cmd = *r.mapper.VoiceCommandToEntity(m)
	return nil
}

func (r *VoiceCommandRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VoiceCommand, error) {
	var models []*model.VoiceCommand
	query := applySpecs(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]*entity.VoiceCommand, len(models))
	for i, m := range models {
		out[i] = r.mapper.VoiceCommandToEntity(m)
	}
	return out, nil
}
