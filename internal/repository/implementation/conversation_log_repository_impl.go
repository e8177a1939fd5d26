package implementation

import (
	"context"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/mapper"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/model"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/contract"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/specification"

	"gorm.io/gorm"
)

type ConversationLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationLogRepository(db *gorm.DB) contract.ConversationLogRepository {
	return &ConversationLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationLogRepositoryImpl) Create(ctx context.Context, log *entity.ConversationLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.Id = m.Id
	log.CreatedAt = m.CreatedAt
	return nil
}

func (r *ConversationLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationLog, error) {
	var models []*model.ConversationLog
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationLog{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ConversationLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
