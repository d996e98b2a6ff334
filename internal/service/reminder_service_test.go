package service

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/contract"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/dispatch"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeReminderRepo struct {
	reminders     []*entity.Reminder
	missedAlerted []uuid.UUID
}

func (r *fakeReminderRepo) Create(ctx context.Context, reminder *entity.Reminder) error {
	r.reminders = append(r.reminders, reminder)
	return nil
}

func (r *fakeReminderRepo) Update(ctx context.Context, reminder *entity.Reminder) error { return nil }

func (r *fakeReminderRepo) Acknowledge(ctx context.Context, id uuid.UUID, at time.Time) error {
	for _, rem := range r.reminders {
		if rem.Id == id && rem.AcknowledgedAt == nil {
			rem.AcknowledgedAt = &at
		}
	}
	return nil
}

func (r *fakeReminderRepo) MarkMissedAlerted(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.missedAlerted = append(r.missedAlerted, id)
	for _, rem := range r.reminders {
		if rem.Id == id && rem.MissedAlertedAt == nil {
			rem.MissedAlertedAt = &at
		}
	}
	return nil
}

func (r *fakeReminderRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reminder, error) {
	if len(r.reminders) == 0 {
		return nil, nil
	}
	return r.reminders[0], nil
}

func (r *fakeReminderRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reminder, error) {
	return r.reminders, nil
}

// fakeUow exposes only the repositories the reminder sweep touches.
type fakeUow struct {
	reminderRepo *fakeReminderRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                 { return nil }
func (u *fakeUow) AlertRepository() contract.AlertRepository               { return nil }
func (u *fakeUow) ConversationRepository() contract.ConversationRepository { return nil }
func (u *fakeUow) NoteRepository() contract.NoteRepository                 { return nil }
func (u *fakeUow) MoodRepository() contract.MoodRepository                 { return nil }
func (u *fakeUow) ReminderRepository() contract.ReminderRepository         { return u.reminderRepo }
func (u *fakeUow) TimelineRepository() contract.TimelineRepository         { return nil }
func (u *fakeUow) VoiceCommandRepository() contract.VoiceCommandRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type capturingAlertStore struct {
	alerts []*companion.Alert
}

func (s *capturingAlertStore) CreateAlert(ctx context.Context, alert *companion.Alert) (uuid.UUID, error) {
	s.alerts = append(s.alerts, alert)
	return alert.Id, nil
}

func newSweepHarness(reminders ...*entity.Reminder) (*reminderService, *fakeReminderRepo, *capturingAlertStore) {
	repo := &fakeReminderRepo{reminders: reminders}
	store := &capturingAlertStore{}
	dispatcher := dispatch.NewDispatcher(
		dispatch.NewMemoryCooldownStore(),
		store,
		log.New(os.Stderr, "", 0),
	)
	svc := &reminderService{
		uowFactory: &fakeUowFactory{uow: &fakeUow{reminderRepo: repo}},
		dispatcher: dispatcher,
		logger:     nopLogger{},
		now:        time.Now,
	}
	return svc, repo, store
}

func overdueReminder(kind entity.ReminderKind) *entity.Reminder {
	return &entity.Reminder{
		Id:        uuid.New(),
		PatientId: uuid.New(),
		Title:     "Morning medication",
		Kind:      kind,
		DueAt:     time.Now().Add(-2 * time.Hour),
		Active:    true,
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}
}

func TestSweepOverdueAlertsOnce(t *testing.T) {
	reminder := overdueReminder(entity.ReminderMedication)
	svc, repo, store := newSweepHarness(reminder)

	require.NoError(t, svc.SweepOverdue(context.Background()))

	require.Len(t, store.alerts, 1)
	alert := store.alerts[0]
	assert.Equal(t, companion.CategoryMissedMedication, alert.Category)
	assert.Equal(t, companion.SeverityHigh, alert.Severity)
	assert.Equal(t, reminder.PatientId, alert.PatientId)
	assert.Len(t, repo.missedAlerted, 1)

	// Second sweep sees MissedAlertedAt set and stays quiet.
	require.NoError(t, svc.SweepOverdue(context.Background()))
	assert.Len(t, store.alerts, 1)
}

func TestSweepSkipsAcknowledged(t *testing.T) {
	reminder := overdueReminder(entity.ReminderMedication)
	ackAt := time.Now().Add(-time.Hour)
	reminder.AcknowledgedAt = &ackAt

	svc, repo, store := newSweepHarness(reminder)

	require.NoError(t, svc.SweepOverdue(context.Background()))

	assert.Empty(t, store.alerts)
	assert.Empty(t, repo.missedAlerted)
}

func TestSweepSeverityByKind(t *testing.T) {
	medication := overdueReminder(entity.ReminderMedication)
	appointment := overdueReminder(entity.ReminderAppointment)

	svc, _, store := newSweepHarness(medication, appointment)

	require.NoError(t, svc.SweepOverdue(context.Background()))

	require.Len(t, store.alerts, 2)
	bySeverity := map[companion.AlertSeverity]int{}
	for _, a := range store.alerts {
		bySeverity[a.Severity]++
	}
	assert.Equal(t, 1, bySeverity[companion.SeverityHigh])
	assert.Equal(t, 1, bySeverity[companion.SeverityMedium])
}
