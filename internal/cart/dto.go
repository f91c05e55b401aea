package cart

import (
	"time"

	"github.com/google/uuid"
)

// ItemView is one cart line as returned to clients. Name and price reflect
// the snapshot taken when the item was added.
type ItemView struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	Subtotal  string    `json:"subtotal"`
}

// View is the full cart shape returned to clients. A user with no stored
// cart gets an empty view rather than an error.
type View struct {
	Items     []ItemView `json:"items"`
	Total     string     `json:"total"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
}
