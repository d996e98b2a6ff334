package unitofwork

import (
	"context"

	"eldercare-assist-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AlertRepository() contract.AlertRepository
	ConversationRepository() contract.ConversationRepository
	NoteRepository() contract.NoteRepository
	MoodRepository() contract.MoodRepository
	ReminderRepository() contract.ReminderRepository
	TimelineRepository() contract.TimelineRepository
	VoiceCommandRepository() contract.VoiceCommandRepository
}
