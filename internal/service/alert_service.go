package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/events"
	pktNats "eldercare-assist-be/pkg/nats"

	"github.com/google/uuid"
)

type IAlertService interface {
	// CreateAlert satisfies the dispatcher's store contract. Alerts
	// reach this method only after cooldown and crisis gating.
	CreateAlert(ctx context.Context, alert *companion.Alert) (uuid.UUID, error)

	List(ctx context.Context, patientId uuid.UUID, status string) ([]*dto.AlertResponse, error)
	Resolve(ctx context.Context, alertId uuid.UUID, resolvedBy uuid.UUID) error
}

type alertService struct {
	uowFactory     unitofwork.RepositoryFactory
	timelinePub    IPublisherService
	eventPublisher *pktNats.Publisher
}

func NewAlertService(
	uowFactory unitofwork.RepositoryFactory,
	timelinePub IPublisherService,
	eventPublisher *pktNats.Publisher,
) IAlertService {
	return &alertService{
		uowFactory:     uowFactory,
		timelinePub:    timelinePub,
		eventPublisher: eventPublisher,
	}
}

func (s *alertService) CreateAlert(ctx context.Context, alert *companion.Alert) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	row := &entity.Alert{
		Id:          alert.Id,
		PatientId:   alert.PatientId,
		Category:    string(alert.Category),
		Severity:    string(alert.Severity),
		Title:       alert.Title,
		Description: alert.Description,
		Metadata:    alert.Metadata,
		Status:      string(alert.Status),
		CreatedAt:   alert.CreatedAt,
	}

	if err := uow.AlertRepository().Create(ctx, row); err != nil {
		return uuid.Nil, err
	}

	// Queue a timeline entry. Timeline persistence is auxiliary, so a
	// queue failure must not fail the alert itself.
	msgPayload := dto.TimelineEventMessage{
		PatientId:  alert.PatientId,
		Kind:       "alert",
		Summary:    alert.Title,
		Metadata:   alert.Metadata,
		OccurredAt: alert.CreatedAt,
	}
	if msgJson, err := json.Marshal(msgPayload); err == nil {
		if err := s.timelinePub.Publish(ctx, msgJson); err != nil {
			fmt.Printf("[WARN] Failed to queue timeline entry for alert %s: %v\n", alert.Id, err)
		}
	}

	// Publish Event for Notification System
	if s.eventPublisher != nil {
		evt := events.NewAlertDispatched(
			alert.Id.String(),
			alert.PatientId.String(),
			string(alert.Category),
			string(alert.Severity),
			alert.Title,
		)
		// We log error but don't fail the request as notification is auxiliary
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish ALERT_DISPATCHED event: %v\n", err)
		}

		if crisisEvt, ok := crisisEvent(alert); ok {
			if err := s.eventPublisher.Publish(ctx, crisisEvt); err != nil {
				fmt.Printf("[WARN] Failed to publish CRISIS_DETECTED event: %v\n", err)
			}
		}
	}

	return alert.Id, nil
}

// crisisEvent derives the secondary crisis event for alerts coming off
// the crisis escalation path. Ordinary alerts produce none.
func crisisEvent(alert *companion.Alert) (events.BaseEvent, bool) {
	if alert.Category != companion.CategoryMentalHealth || alert.Severity != companion.SeverityCritical {
		return events.BaseEvent{}, false
	}
	return events.NewCrisisDetected(alert.PatientId.String(), metadataPhrases(alert.Metadata)), true
}

func metadataPhrases(metadata map[string]interface{}) []string {
	switch v := metadata["phrases"].(type) {
	case []string:
		return v
	case []interface{}:
		phrases := make([]string, 0, len(v))
		for _, p := range v {
			if s, ok := p.(string); ok {
				phrases = append(phrases, s)
			}
		}
		return phrases
	}
	return nil
}

func (s *alertService) List(ctx context.Context, patientId uuid.UUID, status string) ([]*dto.AlertResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	alerts, err := uow.AlertRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		responses = append(responses, &dto.AlertResponse{
			Id:          a.Id,
			PatientId:   a.PatientId,
			Category:    a.Category,
			Severity:    a.Severity,
			Title:       a.Title,
			Description: a.Description,
			Metadata:    a.Metadata,
			Status:      a.Status,
			CreatedAt:   a.CreatedAt,
			ResolvedAt:  a.ResolvedAt,
		})
	}
	return responses, nil
}

func (s *alertService) Resolve(ctx context.Context, alertId uuid.UUID, resolvedBy uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	alert, err := uow.AlertRepository().FindOne(ctx, specification.ByID{ID: alertId})
	if err != nil {
		return err
	}
	if alert == nil {
		return errors.New("alert not found")
	}
	if alert.Status != string(companion.AlertStatusActive) {
		return errors.New("alert already resolved")
	}

	if err := uow.AlertRepository().Resolve(ctx, alertId, resolvedBy, time.Now()); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeAlertResolved,
			Data: map[string]interface{}{
				"alert_id":    alertId.String(),
				"patient_id":  alert.PatientId.String(),
				"resolved_by": resolvedBy.String(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish ALERT_RESOLVED event: %v\n", err)
		}
	}

	return nil
}
