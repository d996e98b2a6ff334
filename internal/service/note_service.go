package service

import (
	"context"
	"errors"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, patientId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, patientId uuid.UUID) ([]*dto.NoteResponse, error)
	Delete(ctx context.Context, patientId uuid.UUID, id uuid.UUID) error

	// CreateNote satisfies the conversation pipeline's note store. Notes
	// created through it are tagged as voice-sourced.
	CreateNote(ctx context.Context, patientId uuid.UUID, content string) (uuid.UUID, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory) INoteService {
	return &noteService{uowFactory: uowFactory}
}

func (c *noteService) Create(ctx context.Context, patientId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		PatientId: patientId,
		Content:   req.Content,
		Source:    entity.NoteSourceManual,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}

	return &dto.NoteResponse{
		Id:        note.Id,
		Content:   note.Content,
		Source:    string(note.Source),
		CreatedAt: note.CreatedAt,
	}, nil
}

func (c *noteService) CreateNote(ctx context.Context, patientId uuid.UUID, content string) (uuid.UUID, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note := entity.Note{
		Id:        uuid.New(),
		PatientId: patientId,
		Content:   content,
		Source:    entity.NoteSourceVoice,
		CreatedAt: time.Now(),
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return uuid.Nil, err
	}
	return note.Id, nil
}

func (c *noteService) List(ctx context.Context, patientId uuid.UUID) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, &dto.NoteResponse{
			Id:        n.Id,
			Content:   n.Content,
			Source:    string(n.Source),
			CreatedAt: n.CreatedAt,
		})
	}
	return responses, nil
}

func (c *noteService) Delete(ctx context.Context, patientId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByPatientID{PatientID: patientId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return errors.New("note not found")
	}
	return uow.NoteRepository().Delete(ctx, id)
}
