package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printlabth/printlab-backend/pkg/enums"
)

// Product is a ready-made catalog item. Prices are whole THB.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string                `gorm:"column:name;not null" json:"name"`
	Slug        string                `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Description string                `gorm:"column:description;not null" json:"description"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null;index" json:"category"`
	ImageURL    string                `gorm:"column:image_url" json:"image_url"`
	Price       int64                 `gorm:"column:price;not null" json:"price"`
	Stock       int                   `gorm:"column:stock;not null;default:0" json:"stock"`
	Featured    bool                  `gorm:"column:featured;not null;default:false" json:"featured"`
	Material    enums.Material        `gorm:"column:material;type:text;not null" json:"material"`
	Dimensions  string                `gorm:"column:dimensions" json:"dimensions"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
