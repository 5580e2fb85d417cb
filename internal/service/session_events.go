package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"memo-drafting-be/internal/dto"
)

// publishSessionEvent pushes a drafting event onto the in-process bus for
// websocket delivery. Event delivery is auxiliary; failures are returned for
// logging but must not fail the request.
func publishSessionEvent(ctx context.Context, pub IPublisherService, userId uuid.UUID, eventType string, data map[string]interface{}) error {
	if pub == nil {
		return nil
	}
	payload, err := json.Marshal(dto.PublishSessionEventMessage{
		UserId: userId,
		Type:   eventType,
		Data:   data,
	})
	if err != nil {
		return err
	}
	return pub.Publish(ctx, payload)
}
