package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/pkg/logger"
	"eldercare-assist-be/internal/pkg/mailer"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/events"
	pktNats "eldercare-assist-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
)

// NotificationMessage is the websocket payload pushed to caregivers.
type NotificationMessage struct {
	Id        uuid.UUID              `json:"id"`
	TypeCode  string                 `json:"type_code"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification NotificationMessage)
	Broadcast(notification NotificationMessage)
}

type NotificationService struct {
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pktNats.Subscriber
	delivery     NotificationDelivery
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery NotificationDelivery,
	emailService mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory:   uowFactory,
		subscriber:   sub,
		delivery:     delivery,
		emailService: emailService,
		logger:       log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects carry the stream prefix
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", typeCode), map[string]interface{}{"type": typeCode})

	patientIdStr, ok := payload["patient_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("Event %s has no patient_id, skipping", typeCode), nil)
		return nil
	}
	patientId, err := uuid.Parse(patientIdStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Invalid patient_id in event payload", map[string]interface{}{"value": patientIdStr})
		return nil
	}

	patient, caregiver, err := s.resolveCareLink(ctx, patientId)
	if err != nil {
		return err // NATS will retry if we return error
	}
	if caregiver == nil {
		s.logger.Warn("NotificationService", "Patient has no caregiver, dropping notification", map[string]interface{}{"patient_id": patientIdStr})
		return nil
	}

	notif := buildNotification(typeCode, patient, payload)
	if s.delivery != nil {
		s.delivery.Send(caregiver.Id, notif)
	}

	// CRITICAL alerts also go out by email. Websocket delivery stays
	// primary; email covers caregivers who are not connected.
	if typeCode == events.TypeAlertDispatched {
		severity, _ := payload["severity"].(string)
		if severity == string(companion.SeverityCritical) {
			title, _ := payload["title"].(string)
			if err := s.emailService.SendCriticalAlert(caregiver.Email, patient.FullName, title, notif.Message); err != nil {
				s.logger.Error("NotificationService", "Failed to send critical alert email", map[string]interface{}{
					"caregiver": caregiver.Email,
					"error":     err.Error(),
				})
			}
		}
	}

	return nil
}

func (s *NotificationService) resolveCareLink(ctx context.Context, patientId uuid.UUID) (*entity.User, *entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	patient, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: patientId})
	if err != nil {
		return nil, nil, err
	}
	if patient == nil || patient.CaregiverId == nil {
		return patient, nil, nil
	}

	caregiver, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *patient.CaregiverId})
	if err != nil {
		return patient, nil, err
	}
	return patient, caregiver, nil
}

func buildNotification(typeCode string, patient *entity.User, payload map[string]interface{}) NotificationMessage {
	patientName := "your patient"
	if patient != nil {
		patientName = patient.FullName
	}

	var title, message string
	switch typeCode {
	case events.TypeAlertDispatched:
		alertTitle, _ := payload["title"].(string)
		severity, _ := payload["severity"].(string)
		title = fmt.Sprintf("[%s] %s", severity, alertTitle)
		message = fmt.Sprintf("New alert for %s: %s", patientName, alertTitle)
	case events.TypeAlertResolved:
		title = "Alert resolved"
		message = fmt.Sprintf("An alert for %s was resolved.", patientName)
	case events.TypeCrisisDetected:
		title = "Crisis language detected"
		message = fmt.Sprintf("%s used crisis language. Please check in immediately.", patientName)
	case events.TypeReminderMissed:
		reminderTitle, _ := payload["title"].(string)
		title = "Reminder missed"
		message = fmt.Sprintf("%s missed reminder %q.", patientName, reminderTitle)
	case events.TypeMoodLogged:
		moodLabel, _ := payload["mood"].(string)
		title = "Mood logged"
		message = fmt.Sprintf("%s logged mood %s.", patientName, moodLabel)
	default:
		title = typeCode
		message = fmt.Sprintf("Update for %s.", patientName)
	}

	return NotificationMessage{
		Id:        uuid.New(),
		TypeCode:  typeCode,
		Title:     title,
		Message:   message,
		Metadata:  payload,
		CreatedAt: time.Now(),
	}
}
