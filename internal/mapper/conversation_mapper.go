package mapper

import (
	"encoding/json"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.ConversationLog) *entity.ConversationLog {
	if c == nil {
		return nil
	}

	var details map[string]interface{}
	if len(c.Details) > 0 {
		_ = json.Unmarshal(c.Details, &details)
	}

	return &entity.ConversationLog{
		Id:        c.Id,
		SessionId: c.SessionId,
		Role:      c.Role,
		Message:   c.Message,
		Intent:    c.Intent,
		Details:   details,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.ConversationLog) *model.ConversationLog {
	if c == nil {
		return nil
	}

	var details datatypes.JSON
	if c.Details != nil {
		if raw, err := json.Marshal(c.Details); err == nil {
			details = raw
		}
	}

	return &model.ConversationLog{
		Id:        c.Id,
		SessionId: c.SessionId,
		Role:      c.Role,
		Message:   c.Message,
		Intent:    c.Intent,
		Details:   details,
		CreatedAt: c.CreatedAt,
	}
}

func (m *ConversationMapper) ToEntities(logs []*model.ConversationLog) []*entity.ConversationLog {
	entities := make([]*entity.ConversationLog, len(logs))
	for i, c := range logs {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
