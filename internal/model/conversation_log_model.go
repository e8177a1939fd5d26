package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string         `gorm:"type:varchar(64);not null;index"`
	Role      string         `gorm:"type:varchar(16);not null"`
	Message   string         `gorm:"type:text;not null"`
	Intent    string         `gorm:"type:varchar(32)"`
	Details   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (ConversationLog) TableName() string {
	return "conversation_logs"
}
