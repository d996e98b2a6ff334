package service

import (
	"context"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITimelineService interface {
	List(ctx context.Context, patientId uuid.UUID, since time.Time, limit int) ([]*dto.TimelineEventResponse, error)
}

type timelineService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTimelineService(uowFactory unitofwork.RepositoryFactory) ITimelineService {
	return &timelineService{uowFactory: uowFactory}
}

func (s *timelineService) List(ctx context.Context, patientId uuid.UUID, since time.Time, limit int) ([]*dto.TimelineEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "occurred_at", Desc: true},
	}
	if !since.IsZero() {
		specs = append(specs, specification.OccurredAfter{Cutoff: since})
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit})
	}

	events, err := uow.TimelineRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.TimelineEventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, &dto.TimelineEventResponse{
			Id:         e.Id,
			Kind:       e.Kind,
			Summary:    e.Summary,
			Metadata:   e.Metadata,
			OccurredAt: e.OccurredAt,
		})
	}
	return responses, nil
}
