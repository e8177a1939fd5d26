package implementation

import (
	"context"
	"errors"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/mapper"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/model"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/contract"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product, brandId, categoryId uuid.UUID) error {
	m := r.mapper.ToModel(product, brandId, categoryId)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.Id = m.Id
	product.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.baseQuery(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.baseQuery(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Product{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// baseQuery preloads the lookup tables every read path needs for the
// flattened entity.
func (r *ProductRepositoryImpl) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Preload("Brand").
		Preload("Category").
		Order("products.name ASC")
}

func (r *ProductRepositoryImpl) EnsureBrand(ctx context.Context, name string) (*entity.Brand, error) {
	m := model.Brand{Name: strings.TrimSpace(name)}
	err := r.db.WithContext(ctx).Where("name = ?", m.Name).FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	return &entity.Brand{Id: m.Id, Name: m.Name}, nil
}

func (r *ProductRepositoryImpl) EnsureCategory(ctx context.Context, name string) (*entity.Category, error) {
	m := model.Category{Name: strings.TrimSpace(name)}
	err := r.db.WithContext(ctx).Where("name = ?", m.Name).FirstOrCreate(&m).Error
	if err != nil {
		return nil, err
	}
	return &entity.Category{Id: m.Id, Name: m.Name}, nil
}
