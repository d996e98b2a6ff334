package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/pkg/companion/mood"
	"eldercare-assist-be/pkg/events"
	pktNats "eldercare-assist-be/pkg/nats"

	"github.com/google/uuid"
)

type IMoodService interface {
	Log(ctx context.Context, patientId uuid.UUID, req *dto.LogMoodRequest) (*dto.MoodEntryResponse, error)
	List(ctx context.Context, patientId uuid.UUID, since time.Time) ([]*dto.MoodEntryResponse, error)
}

type moodService struct {
	uowFactory     unitofwork.RepositoryFactory
	timelinePub    IPublisherService
	eventPublisher *pktNats.Publisher
}

func NewMoodService(
	uowFactory unitofwork.RepositoryFactory,
	timelinePub IPublisherService,
	eventPublisher *pktNats.Publisher,
) IMoodService {
	return &moodService{
		uowFactory:     uowFactory,
		timelinePub:    timelinePub,
		eventPublisher: eventPublisher,
	}
}

func (s *moodService) Log(ctx context.Context, patientId uuid.UUID, req *dto.LogMoodRequest) (*dto.MoodEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	canonical := mood.Canonicalize(req.Input)
	entry := &entity.MoodEntry{
		Id:        uuid.New(),
		PatientId: patientId,
		Mood:      string(canonical),
		RawInput:  req.Input,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}

	if err := uow.MoodRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	msgPayload := dto.TimelineEventMessage{
		PatientId:  patientId,
		Kind:       "mood",
		Summary:    fmt.Sprintf("Mood logged: %s", entry.Mood),
		OccurredAt: entry.CreatedAt,
	}
	if msgJson, err := json.Marshal(msgPayload); err == nil {
		if err := s.timelinePub.Publish(ctx, msgJson); err != nil {
			fmt.Printf("[WARN] Failed to queue timeline entry for mood %s: %v\n", entry.Id, err)
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeMoodLogged,
			Data: map[string]interface{}{
				"patient_id": patientId.String(),
				"mood":       entry.Mood,
			},
			OccurredAt: entry.CreatedAt,
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish MOOD_LOGGED event: %v\n", err)
		}
	}

	return &dto.MoodEntryResponse{
		Id:        entry.Id,
		Mood:      entry.Mood,
		RawInput:  entry.RawInput,
		Note:      entry.Note,
		CreatedAt: entry.CreatedAt,
	}, nil
}

func (s *moodService) List(ctx context.Context, patientId uuid.UUID, since time.Time) ([]*dto.MoodEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if !since.IsZero() {
		specs = append(specs, specification.CreatedAfter{Cutoff: since})
	}

	entries, err := uow.MoodRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.MoodEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, &dto.MoodEntryResponse{
			Id:        e.Id,
			Mood:      e.Mood,
			RawInput:  e.RawInput,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return responses, nil
}
