package unitofwork

import (
	"context"
	"fmt"

	"eldercare-assist-be/internal/repository/contract"
	"eldercare-assist-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AlertRepository() contract.AlertRepository {
	return implementation.NewAlertRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ConversationRepository() contract.ConversationRepository {
	return implementation.NewConversationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NoteRepository() contract.NoteRepository {
	return implementation.NewNoteRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MoodRepository() contract.MoodRepository {
	return implementation.NewMoodRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReminderRepository() contract.ReminderRepository {
	return implementation.NewReminderRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TimelineRepository() contract.TimelineRepository {
	return implementation.NewTimelineRepository(u.getDB())
}

func (u *UnitOfWorkImpl) VoiceCommandRepository() contract.VoiceCommandRepository {
	return implementation.NewVoiceCommandRepository(u.getDB())
}
