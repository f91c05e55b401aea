package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput carries the fields accepted when adding a catalog entry.
type CreateInput struct {
	Name             string
	Description      string
	Price            decimal.Decimal
	Marketer         string
	Marketed         bool
	AvailableForSale bool
	Image            string
}

// UpdateInput carries the optional fields for a catalog edit. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Name             *string
	Description      *string
	Price            *decimal.Decimal
	Marketer         *string
	Marketed         *bool
	AvailableForSale *bool
	Image            *string
}

// View is the catalog entry shape returned to clients.
type View struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Price            string    `json:"price"`
	Marketer         string    `json:"marketer,omitempty"`
	Marketed         bool      `json:"marketed"`
	AvailableForSale bool      `json:"availableForSale"`
	Image            string    `json:"image,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
