package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/pkg/logger"
	"eldercare-assist-be/internal/repository/memory"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/pkg/companion"
	"eldercare-assist-be/pkg/companion/pipeline"
	"eldercare-assist-be/pkg/speech"
	"eldercare-assist-be/pkg/store"

	"github.com/google/uuid"
)

type IVoiceService interface {
	HandleUtterance(ctx context.Context, patientId uuid.UUID, req *dto.VoiceUtteranceRequest) (*dto.VoiceUtteranceResponse, error)
	History(ctx context.Context, patientId uuid.UUID, limit int) ([]*dto.VoiceCommandResponse, error)
}

type voiceService struct {
	engine     *pipeline.Engine
	speech     speech.Provider
	sessions   *memory.SessionRepository
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	// mu guards locks. Each patient gets one mutex so utterances for a
	// single patient are serialized while patients stay independent.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewVoiceService(
	engine *pipeline.Engine,
	speechProvider speech.Provider,
	sessions *memory.SessionRepository,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IVoiceService {
	return &voiceService{
		engine:     engine,
		speech:     speechProvider,
		sessions:   sessions,
		uowFactory: uowFactory,
		logger:     log,
		locks:      make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *voiceService) patientLock(patientId uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[patientId]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[patientId] = lock
	}
	return lock
}

func (s *voiceService) HandleUtterance(ctx context.Context, patientId uuid.UUID, req *dto.VoiceUtteranceRequest) (*dto.VoiceUtteranceResponse, error) {
	lock := s.patientLock(patientId)
	lock.Lock()
	defer lock.Unlock()

	text := req.Text
	if text == "" && len(req.Audio) > 0 {
		transcript, err := s.speech.Transcribe(ctx, req.Audio, req.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("transcription failed: %w", err)
		}
		text = transcript
	}

	sess, found := s.sessions.GetByPatient(patientId.String())
	if !found {
		sess = &store.Session{
			ID:        uuid.New().String(),
			PatientID: patientId.String(),
			State:     store.StateIdle,
			Risk:      companion.RiskLow,
		}
	}

	utt := companion.Utterance{
		Text:       text,
		Audio:      req.Audio,
		SampleRate: req.SampleRate,
		At:         time.Now(),
	}

	outcome, err := s.engine.Process(ctx, sess, utt)
	if err != nil {
		s.sessions.Save(sess)
		return nil, err
	}
	s.sessions.Save(sess)

	s.recordCommand(ctx, patientId, text, outcome)

	if outcome.Reply != "" {
		if err := s.speech.Speak(ctx, outcome.Reply); err != nil {
			s.logger.Warn("voice", "Voice playback failed", map[string]interface{}{
				"patient_id": patientId.String(),
				"error":      err.Error(),
			})
		}
	}

	return mapOutcome(outcome), nil
}

// recordCommand persists an audit row per processed utterance. Audit
// failures are logged, never surfaced to the patient.
func (s *voiceService) recordCommand(ctx context.Context, patientId uuid.UUID, transcript string, outcome *companion.Outcome) {
	cmd := &entity.VoiceCommand{
		Id:         uuid.New(),
		PatientId:  patientId,
		Transcript: transcript,
		Outcome:    string(outcome.Type),
		CreatedAt:  time.Now(),
	}
	if outcome.Signal != nil {
		cmd.Confidence = outcome.Signal.Confidence
		switch outcome.Signal.Kind {
		case companion.SignalIntent:
			cmd.Intent = outcome.Signal.Label
		case companion.SignalEmotion:
			cmd.Emotion = outcome.Signal.Label
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.VoiceCommandRepository().Create(ctx, cmd); err != nil {
		s.logger.Error("voice", "Failed to record voice command", map[string]interface{}{
			"patient_id": patientId.String(),
			"error":      err.Error(),
		})
	}
}

func (s *voiceService) History(ctx context.Context, patientId uuid.UUID, limit int) ([]*dto.VoiceCommandResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := []specification.Specification{
		specification.ByPatientID{PatientID: patientId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if limit > 0 {
		specs = append(specs, specification.Pagination{Limit: limit})
	}
	cmds, err := uow.VoiceCommandRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.VoiceCommandResponse, 0, len(cmds))
	for _, c := range cmds {
		responses = append(responses, &dto.VoiceCommandResponse{
			Id:         c.Id,
			Transcript: c.Transcript,
			Intent:     c.Intent,
			Emotion:    c.Emotion,
			Confidence: c.Confidence,
			Outcome:    c.Outcome,
			CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		})
	}
	return responses, nil
}

func mapOutcome(outcome *companion.Outcome) *dto.VoiceUtteranceResponse {
	resp := &dto.VoiceUtteranceResponse{
		Type:     string(outcome.Type),
		Reply:    outcome.Reply,
		Reprompt: outcome.Reprompt,
	}
	if outcome.Signal != nil {
		resp.Signal = &dto.SignalPayload{
			Kind:       string(outcome.Signal.Kind),
			Label:      outcome.Signal.Label,
			Confidence: outcome.Signal.Confidence,
			Source:     outcome.Signal.Source,
			Critical:   outcome.Signal.Critical,
		}
	}
	if outcome.Pending != nil {
		resp.Pending = &dto.PendingPayload{
			Type:    string(outcome.Pending.Type),
			Payload: outcome.Pending.Payload,
			State:   string(outcome.Pending.State),
		}
	}
	if outcome.Alert != nil {
		resp.Alert = &dto.AlertPayload{
			Id:       outcome.Alert.Id,
			Category: string(outcome.Alert.Category),
			Severity: string(outcome.Alert.Severity),
			Title:    outcome.Alert.Title,
		}
	}
	if outcome.Suppression != nil {
		resp.Suppression = &dto.SuppressionPayload{
			Category:     string(outcome.Suppression.Category),
			Reason:       outcome.Suppression.Reason,
			RetryAfterMs: outcome.Suppression.RetryAfterMs(),
		}
	}
	if outcome.NoteId != uuid.Nil {
		noteId := outcome.NoteId
		resp.NoteId = &noteId
	}
	return resp
}
