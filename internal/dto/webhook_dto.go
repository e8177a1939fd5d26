package dto

import (
	"time"

	"github.com/google/uuid"
)

type WebhookMessageRequest struct {
	From      string `json:"from" validate:"required"`
	MessageId string `json:"message_id"`
	Body      string `json:"body" validate:"required"`
}

type WebhookMessageResponse struct {
	Reply     string `json:"reply"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

type ConversationEntryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Message   string    `json:"message"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishTurnLoggedMessage is the payload handed to the in-process bus
// after each answered turn; the consumer persists it off the hot path.
type PublishTurnLoggedMessage struct {
	SessionId string `json:"session_id"`
	Utterance string `json:"utterance"`
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
}
