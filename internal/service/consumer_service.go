package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"eldercare-assist-be/internal/dto"
	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process timeline queue and persists one
// TimelineEvent row per message. Writing through a queue keeps timeline
// persistence off the utterance hot path.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.TimelineEventMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal timeline message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	occurredAt := payload.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	event := entity.TimelineEvent{
		Id:         uuid.New(),
		PatientId:  payload.PatientId,
		Kind:       payload.Kind,
		Summary:    payload.Summary,
		Metadata:   payload.Metadata,
		OccurredAt: occurredAt,
	}

	if err := uow.TimelineRepository().Create(ctx, &event); err != nil {
		log.Printf("[ERROR] Failed to persist timeline event for %s: %v", payload.PatientId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
