package dto

import "github.com/google/uuid"

// PublishSessionEventMessage is the payload carried over the in-process
// event bus from drafting services to the websocket fanout.
type PublishSessionEventMessage struct {
	UserId uuid.UUID              `json:"user_id"`
	Type   string                 `json:"type"`
	Data   map[string]interface{} `json:"data"`
}
