package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rajchaudar/HR-Dep/internal/cart"
	"github.com/rajchaudar/HR-Dep/internal/orders"
	"github.com/rajchaudar/HR-Dep/pkg/config"
	"github.com/rajchaudar/HR-Dep/pkg/db/models"
	"github.com/rajchaudar/HR-Dep/pkg/enums"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
	"github.com/rajchaudar/HR-Dep/pkg/payments/stripe"
	"github.com/rajchaudar/HR-Dep/pkg/types"
)

type cartReader interface {
	WithTx(tx *gorm.DB) cart.Repository
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type orderWriter interface {
	WithTx(tx *gorm.DB) orders.Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Input carries the buyer contact and shipping details for a checkout.
type Input struct {
	UserID   uuid.UUID
	Name     string
	Email    string
	Contact  string
	Shipping types.Address
}

// Result is returned on a successful checkout. The client secret is handed
// to the frontend to confirm the payment with the processor.
type Result struct {
	OrderID      uuid.UUID `json:"orderId"`
	ClientSecret string    `json:"clientSecret"`
	TotalAmount  string    `json:"totalAmount"`
}

// Service turns a cart into a pending order with an attached payment intent.
type Service interface {
	Checkout(ctx context.Context, input Input) (*Result, error)
}

type service struct {
	carts    cartReader
	orders   orderWriter
	payments stripe.PaymentIntents
	tx       txRunner
	cfg      config.CheckoutConfig
	logg     *logger.Logger
}

// NewService builds the checkout service.
func NewService(carts cartReader, orderRepo orderWriter, payments stripe.PaymentIntents, tx txRunner, cfg config.CheckoutConfig, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment intents client required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		carts:    carts,
		orders:   orderRepo,
		payments: payments,
		tx:       tx,
		cfg:      cfg,
		logg:     logg,
	}, nil
}

// Checkout creates the payment intent first, then writes the order and
// deletes the cart inside one transaction. If the transaction fails the
// intent is cancelled best-effort so the buyer is never charged for an
// order that does not exist.
func (s *service) Checkout(ctx context.Context, input Input) (*Result, error) {
	shipping := input.Shipping.Normalize(s.cfg.Country)
	if !shipping.Complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is incomplete")
	}
	if strings.TrimSpace(input.Contact) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact number is required")
	}

	userCart, err := s.carts.FindByUserID(ctx, input.UserID)
	if err == cart.ErrNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if len(userCart.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	total := cart.Total(userCart.Items)

	intent, err := s.payments.CreateIntent(ctx, stripe.IntentParams{
		Amount:       total,
		Currency:     s.cfg.Currency,
		ReceiptEmail: input.Email,
		CustomerName: input.Name,
		Shipping:     shipping,
		Metadata: map[string]string{
			"user_id": input.UserID.String(),
		},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePaymentFailed, err, "create payment intent")
	}

	order := &models.Order{
		UserID:          input.UserID,
		Name:            input.Name,
		Email:           input.Email,
		Contact:         input.Contact,
		ShippingAddress: shipping,
		TotalAmount:     total,
		PaymentIntentID: intent.ID,
		Status:          enums.OrderStatusPending,
		Items:           orderItemsFromCart(userCart.Items),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.orders.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		return s.carts.WithTx(tx).DeleteByUserID(ctx, input.UserID)
	})
	if err != nil {
		s.cancelIntent(ctx, intent.ID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id": order.ID.String(),
			"total":    total.StringFixed(2),
		})
		s.logg.Info(logCtx, "checkout.completed")
	}

	return &Result{
		OrderID:      order.ID,
		ClientSecret: intent.ClientSecret,
		TotalAmount:  total.StringFixed(2),
	}, nil
}

// cancelIntent voids an orphaned intent. Failure here is logged and
// swallowed; the intent expires on the processor side regardless.
func (s *service) cancelIntent(ctx context.Context, intentID string) {
	if err := s.payments.CancelIntent(ctx, intentID); err != nil && s.logg != nil {
		logCtx := s.logg.WithField(ctx, "intent_id", intentID)
		s.logg.Warn(logCtx, fmt.Sprintf("failed to cancel orphaned intent: %v", err))
	}
}

func orderItemsFromCart(items []models.CartItem) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return out
}
