package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"memo-drafting-be/internal/dto"
	internalWS "memo-drafting-be/internal/websocket"
)

type IEventStreamService interface {
	Consume(ctx context.Context) error
}

// eventStreamService bridges the in-process event bus to the websocket hub
// so clients see drafting progress without polling.
type eventStreamService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	hub       *internalWS.Hub
}

func NewEventStreamService(pubSub *gochannel.GoChannel, topicName string, hub *internalWS.Hub) IEventStreamService {
	return &eventStreamService{
		pubSub:    pubSub,
		topicName: topicName,
		hub:       hub,
	}
}

func (s *eventStreamService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *eventStreamService) processMessage(msg *message.Message) {
	var payload dto.PublishSessionEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session event: %v", err)
		msg.Ack() // malformed messages cannot be retried into shape
		return
	}

	s.hub.Send(payload.UserId, payload.Type, payload.Data)
	msg.Ack()
}
