package mapper

import (
	"time"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogMapper flattens the relational product row (brand and category
// preloaded) into the entity the conversation layer works with.
type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	brand := ""
	if p.Brand != nil {
		brand = p.Brand.Name
	}
	category := ""
	if p.Category != nil {
		category = p.Category.Name
	}

	return &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		Brand:       brand,
		Category:    category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   p.DeletedAt.Valid,
	}
}

func (m *CatalogMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

// ToModel maps back without the flattened names; callers supply the
// brand/category ids (the seed path resolves them first).
func (m *CatalogMapper) ToModel(p *entity.Product, brandId, categoryId uuid.UUID) *model.Product {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		BrandId:     brandId,
		CategoryId:  categoryId,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}
