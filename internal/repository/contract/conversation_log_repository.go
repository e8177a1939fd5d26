package contract

import (
	"context"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/specification"
)

type ConversationLogRepository interface {
	Create(ctx context.Context, log *entity.ConversationLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
