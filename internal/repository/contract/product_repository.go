package contract

import (
	"context"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/specification"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product, brandId, categoryId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	EnsureBrand(ctx context.Context, name string) (*entity.Brand, error)
	EnsureCategory(ctx context.Context, name string) (*entity.Category, error)
}
