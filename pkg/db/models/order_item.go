package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printlabth/printlab-backend/pkg/enums"
)

// OrderItem captures the snapshot of one accepted design file within an
// order. Items are immutable after creation.
type OrderItem struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID      `gorm:"column:order_id;type:uuid;not null;index" json:"-"`
	FileName      string         `gorm:"column:file_name;not null" json:"file_name"`
	FileURL       string         `gorm:"column:file_url;not null" json:"file_url"`
	FileSizeBytes int64          `gorm:"column:file_size_bytes;not null" json:"file_size_bytes"`
	Material      enums.Material `gorm:"column:material;type:text;not null" json:"material"`
	Color         string         `gorm:"column:color;not null" json:"color"`
	Quantity      int            `gorm:"column:quantity;not null" json:"quantity"`
	WeightGrams   int            `gorm:"column:weight_grams;not null" json:"weight_grams"`
	UnitPrice     int64          `gorm:"column:unit_price;not null" json:"unit_price"`
	TotalPrice    int64          `gorm:"column:total_price;not null" json:"total_price"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
