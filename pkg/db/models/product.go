package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Marketed controls the marketing listing,
// AvailableForSale controls the store listing; the two are independent.
type Product struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string          `gorm:"column:name;not null"`
	Description      string          `gorm:"column:description"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Marketer         string          `gorm:"column:marketer"`
	Marketed         bool            `gorm:"column:marketed;not null;default:false"`
	AvailableForSale bool            `gorm:"column:available_for_sale;not null;default:false"`
	Image            string          `gorm:"column:image"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
