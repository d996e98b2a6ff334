package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/pkg/logger"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/dispatch"
	"eldercare-assist-be/pkg/events"
	pktNats "eldercare-assist-be/pkg/nats"

	"github.com/google/uuid"
)

// missedGrace is how long past the due time a reminder may sit
// unacknowledged before the sweep alerts the caregiver.
const missedGrace = 30 * time.Minute

type IReminderService interface {
	Create(ctx context.Context, patientId uuid.UUID, req *dto.CreateReminderRequest) (*dto.ReminderResponse, error)
	Acknowledge(ctx context.Context, patientId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, patientId uuid.UUID) ([]*dto.ReminderResponse, error)

	// SweepOverdue finds reminders past their grace window and alerts
	// once per reminder. Invoked on a cron schedule.
	SweepOverdue(ctx context.Context) error
}

type reminderService struct {
	uowFactory     unitofwork.RepositoryFactory
	dispatcher     *dispatch.Dispatcher
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	now            func() time.Time
}

func NewReminderService(
	uowFactory unitofwork.RepositoryFactory,
	dispatcher *dispatch.Dispatcher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IReminderService {
	return &reminderService{
		uowFactory:     uowFactory,
		dispatcher:     dispatcher,
		eventPublisher: eventPublisher,
		logger:         log,
		now:            time.Now,
	}
}

func (s *reminderService) Create(ctx context.Context, patientId uuid.UUID, req *dto.CreateReminderRequest) (*dto.ReminderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reminder := &entity.Reminder{
		Id:        uuid.New(),
		PatientId: patientId,
		Title:     req.Title,
		Kind:      entity.ReminderKind(req.Kind),
		DueAt:     req.DueAt,
		Active:    true,
		CreatedAt: s.now(),
	}

	if err := uow.ReminderRepository().Create(ctx, reminder); err != nil {
		return nil, err
	}

	return reminderToResponse(reminder), nil
}

func (s *reminderService) Acknowledge(ctx context.Context, patientId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reminder, err := uow.ReminderRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByPatientID{PatientID: patientId},
	)
	if err != nil {
		return err
	}
	if reminder == nil {
		return errors.New("reminder not found")
	}

	return uow.ReminderRepository().Acknowledge(ctx, id, s.now())
}

func (s *reminderService) List(ctx context.Context, patientId uuid.UUID) ([]*dto.ReminderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	reminders, err := uow.ReminderRepository().FindAll(ctx,
		specification.ByPatientID{PatientID: patientId},
		specification.ActiveOnly{},
		specification.OrderBy{Field: "due_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		responses = append(responses, reminderToResponse(r))
	}
	return responses, nil
}

func (s *reminderService) SweepOverdue(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	cutoff := s.now().Add(-missedGrace)

	overdue, err := uow.ReminderRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.DueBefore{Cutoff: cutoff},
	)
	if err != nil {
		return fmt.Errorf("sweep: loading overdue reminders: %w", err)
	}

	for _, r := range overdue {
		if r.AcknowledgedAt != nil || r.MissedAlertedAt != nil {
			continue
		}

		severity := companion.SeverityMedium
		if r.Kind == entity.ReminderMedication {
			severity = companion.SeverityHigh
		}

		alert, suppression, err := s.dispatcher.Dispatch(ctx, dispatch.Request{
			PatientId: r.PatientId,
			Category:  companion.CategoryMissedMedication,
			Severity:  severity,
			Title:     fmt.Sprintf("Missed reminder: %s", r.Title),
			Description: fmt.Sprintf("Reminder %q (%s) was due at %s and has not been acknowledged.",
				r.Title, r.Kind, r.DueAt.Format(time.RFC3339)),
			Metadata: map[string]interface{}{
				"reminder_id": r.Id.String(),
				"kind":        string(r.Kind),
				"due_at":      r.DueAt.Format(time.RFC3339),
			},
		})
		if err != nil {
			s.logger.Error("reminder", "Failed to dispatch missed reminder alert", map[string]interface{}{
				"reminder_id": r.Id.String(),
				"error":       err.Error(),
			})
			continue
		}
		if suppression != nil {
			// Leave MissedAlertedAt unset so the next sweep retries once
			// the cooldown clears.
			continue
		}

		if err := uow.ReminderRepository().MarkMissedAlerted(ctx, r.Id, s.now()); err != nil {
			s.logger.Error("reminder", "Failed to mark reminder as alerted", map[string]interface{}{
				"reminder_id": r.Id.String(),
				"error":       err.Error(),
			})
			continue
		}

		if s.eventPublisher != nil && alert != nil {
			evt := events.NewReminderMissed(r.Id.String(), r.PatientId.String(), r.Title)
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish REMINDER_MISSED event: %v\n", err)
			}
		}
	}

	return nil
}

func reminderToResponse(r *entity.Reminder) *dto.ReminderResponse {
	return &dto.ReminderResponse{
		Id:             r.Id,
		Title:          r.Title,
		Kind:           string(r.Kind),
		DueAt:          r.DueAt,
		AcknowledgedAt: r.AcknowledgedAt,
		Active:         r.Active,
	}
}
