package service

import (
	"context"
	"encoding/json"
	"testing"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/contract"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMoodRepo struct {
	entries []*entity.MoodEntry
}

func (r *fakeMoodRepo) Create(ctx context.Context, mood *entity.MoodEntry) error {
	r.entries = append(r.entries, mood)
	return nil
}

func (r *fakeMoodRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MoodEntry, error) {
	return r.entries, nil
}

func (r *fakeMoodRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.entries)), nil
}

type moodUow struct {
	fakeUow
	moodRepo *fakeMoodRepo
}

func (u *moodUow) MoodRepository() contract.MoodRepository { return u.moodRepo }

type moodUowFactory struct {
	uow *moodUow
}

func (f *moodUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestMoodLogCanonicalizes(t *testing.T) {
	repo := &fakeMoodRepo{}
	pub := &capturingPublisher{}
	svc := NewMoodService(&moodUowFactory{uow: &moodUow{moodRepo: repo}}, pub, nil)

	patientId := uuid.New()
	res, err := svc.Log(context.Background(), patientId, &dto.LogMoodRequest{Input: "feeling really down today"})
	require.NoError(t, err)

	assert.Equal(t, "Sad", res.Mood)
	assert.Equal(t, "feeling really down today", res.RawInput)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "Sad", repo.entries[0].Mood)

	// The entry is queued for the timeline.
	require.Len(t, pub.payloads, 1)
	var msg dto.TimelineEventMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, patientId, msg.PatientId)
	assert.Equal(t, "mood", msg.Kind)
	assert.Contains(t, msg.Summary, "Sad")
}

func TestMoodLogUnknownInputIsNeutral(t *testing.T) {
	repo := &fakeMoodRepo{}
	svc := NewMoodService(&moodUowFactory{uow: &moodUow{moodRepo: repo}}, &capturingPublisher{}, nil)

	res, err := svc.Log(context.Background(), uuid.New(), &dto.LogMoodRequest{Input: "meh"})
	require.NoError(t, err)
	assert.Equal(t, "Neutral", res.Mood)
}
