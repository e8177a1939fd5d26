package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null;index"`
	Description string         `gorm:"type:text"`
	CostPrice   float64        `gorm:"type:numeric(12,2);not null"`
	SalePrice   float64        `gorm:"type:numeric(12,2);not null"`
	Stock       int            `gorm:"not null;default:0"`
	BrandId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CategoryId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Brand       *Brand         `gorm:"foreignKey:BrandId"`
	Category    *Category      `gorm:"foreignKey:CategoryId"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}

type Brand struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(120);not null;uniqueIndex"`
}

func (Brand) TableName() string {
	return "brands"
}

type Category struct {
	Id   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(120);not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}
