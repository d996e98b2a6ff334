package service

import (
	"context"
	"testing"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/contract"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"
	"eldercare-assist-be/pkg/companion"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversationRepo struct {
	convs []*entity.Conversation
	msgs  []*entity.ConversationMessage
}

func (r *fakeConversationRepo) Create(ctx context.Context, conv *entity.Conversation) error {
	r.convs = append(r.convs, conv)
	return nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, conv *entity.Conversation) error {
	return nil
}

func (r *fakeConversationRepo) UpdateRisk(ctx context.Context, id uuid.UUID, riskLevel string) error {
	for _, c := range r.convs {
		if c.Id == id {
			c.RiskLevel = riskLevel
		}
	}
	return nil
}

func (r *fakeConversationRepo) End(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	for _, c := range r.convs {
		if c.Id == id {
			at := endedAt
			c.EndedAt = &at
		}
	}
	return nil
}

// FindOne ignores specs and returns the most recently started
// conversation, matching the service's started_at DESC query.
func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	if len(r.convs) == 0 {
		return nil, nil
	}
	return r.convs[len(r.convs)-1], nil
}

func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	return r.convs, nil
}

func (r *fakeConversationRepo) AddMessage(ctx context.Context, msg *entity.ConversationMessage) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *fakeConversationRepo) FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationMessage, error) {
	return r.msgs, nil
}

type convUow struct {
	fakeUow
	repo *fakeConversationRepo
}

func (u *convUow) ConversationRepository() contract.ConversationRepository { return u.repo }

type convUowFactory struct {
	uow *convUow
}

func (f *convUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newConversationService() (IConversationService, *fakeConversationRepo) {
	repo := &fakeConversationRepo{}
	return NewConversationService(&convUowFactory{uow: &convUow{repo: repo}}), repo
}

func TestGetOrCreateReturnsOpenConversation(t *testing.T) {
	svc, _ := newConversationService()
	patientId := uuid.New()

	first, err := svc.GetOrCreate(context.Background(), patientId)
	require.NoError(t, err)
	assert.Equal(t, string(companion.RiskLow), first.RiskLevel)

	again, err := svc.GetOrCreate(context.Background(), patientId)
	require.NoError(t, err)
	assert.Equal(t, first.Id, again.Id)
}

func TestEndConversationStartsFreshOne(t *testing.T) {
	svc, repo := newConversationService()
	patientId := uuid.New()

	first, err := svc.GetOrCreate(context.Background(), patientId)
	require.NoError(t, err)
	require.NoError(t, svc.SetConversationRisk(context.Background(), patientId, companion.RiskHigh))

	require.NoError(t, svc.End(context.Background(), patientId))
	require.NotNil(t, repo.convs[0].EndedAt)

	// Nothing left to close.
	assert.Error(t, svc.End(context.Background(), patientId))

	// The next utterance gets a fresh conversation with the risk
	// ratchet back at LOW.
	fresh, err := svc.GetOrCreate(context.Background(), patientId)
	require.NoError(t, err)
	assert.NotEqual(t, first.Id, fresh.Id)
	assert.Nil(t, fresh.EndedAt)
	assert.Equal(t, string(companion.RiskLow), fresh.RiskLevel)
}
