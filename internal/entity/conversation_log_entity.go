package entity

import (
	"time"

	"github.com/google/uuid"
)

type ConversationLog struct {
	Id        uuid.UUID
	SessionId string
	Role      string
	Message   string
	Intent    string
	Details   map[string]interface{}
	CreatedAt time.Time
}
