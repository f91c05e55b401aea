package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/rajchaudar/HR-Dep/pkg/enums"
	"github.com/rajchaudar/HR-Dep/pkg/types"
)

// ItemView is one purchased line as returned to clients.
type ItemView struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
}

// View is the order shape returned to clients.
type View struct {
	ID              uuid.UUID         `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Contact         string            `json:"contact"`
	ShippingAddress types.Address     `json:"shippingAddress"`
	Items           []ItemView        `json:"items"`
	TotalAmount     string            `json:"totalAmount"`
	Status          enums.OrderStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}
