package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rajchaudar/HR-Dep/pkg/db/models"
	"github.com/rajchaudar/HR-Dep/pkg/enums"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
)

// Service defines order reads and the status state machine.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]View, error)
	Get(ctx context.Context, userID, orderID uuid.UUID) (*View, error)
	UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status enums.OrderStatus) (*View, error)
}

type service struct {
	repo Repository
}

// NewService builds the orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]View, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	views := make([]View, 0, len(orders))
	for i := range orders {
		views = append(views, toView(&orders[i]))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, userID, orderID uuid.UUID) (*View, error) {
	order, err := s.load(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	view := toView(order)
	return &view, nil
}

// UpdateStatus advances an order along Pending -> Paid -> Shipped ->
// Delivered. Skipping ahead or moving backwards is rejected.
func (s *service) UpdateStatus(ctx context.Context, userID, orderID uuid.UUID, status enums.OrderStatus) (*View, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	order, err := s.load(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status)).
			WithDetails(map[string]any{"from": order.Status, "to": status})
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	order.Status = status
	view := toView(order)
	return &view, nil
}

// load fetches an order and enforces ownership.
func (s *service) load(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err == ErrNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another user")
	}
	return order, nil
}

func toView(order *models.Order) View {
	items := make([]ItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}
	return View{
		ID:              order.ID,
		Name:            order.Name,
		Email:           order.Email,
		Contact:         order.Contact,
		ShippingAddress: order.ShippingAddress,
		Items:           items,
		TotalAmount:     order.TotalAmount.StringFixed(2),
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
	}
}
