package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rajchaudar/HR-Dep/pkg/enums"
	"github.com/rajchaudar/HR-Dep/pkg/types"
)

// Order is an immutable purchase snapshot. Only Status is ever mutated,
// and only along the forward Pending -> Paid -> Shipped -> Delivered path.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Name            string            `gorm:"column:name;not null"`
	Email           string            `gorm:"column:email;not null"`
	Contact         string            `gorm:"column:contact;not null"`
	ShippingAddress types.Address     `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(10,2);not null"`
	PaymentIntentID string            `gorm:"column:payment_intent_id;not null"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'Pending'"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
