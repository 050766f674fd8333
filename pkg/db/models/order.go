package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printlabth/printlab-backend/pkg/enums"
)

// Order is a persisted customer submission. TotalAmount is the sum of the
// item totals in whole THB; the invariant is enforced at assembly time.
type Order struct {
	ID                uuid.UUID          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	OrderNumber       string             `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	UserID            uuid.UUID          `gorm:"column:user_id;type:uuid;not null;index" json:"-"`
	Status            enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'PENDING'" json:"status"`
	DeliveryType      enums.DeliveryType `gorm:"column:delivery_type;type:text;not null;default:'STANDARD'" json:"delivery_type"`
	TotalAmount       int64              `gorm:"column:total_amount;not null" json:"total_amount"`
	EstimatedDelivery time.Time          `gorm:"column:estimated_delivery;not null" json:"estimated_delivery"`
	TrackingNumber    *string            `gorm:"column:tracking_number" json:"tracking_number,omitempty"`
	Notes             *string            `gorm:"column:notes" json:"notes,omitempty"`
	User              *User              `gorm:"foreignKey:UserID" json:"customer,omitempty"`
	Items             []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
