package products

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rajchaudar/HR-Dep/pkg/db/models"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
)

// Service defines catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*View, error)
	Get(ctx context.Context, id uuid.UUID) (*View, error)
	List(ctx context.Context) ([]View, error)
	ListMarketed(ctx context.Context) ([]View, error)
	ListStore(ctx context.Context) ([]View, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
	}

	product := &models.Product{
		Name:             input.Name,
		Description:      input.Description,
		Price:            input.Price,
		Marketer:         input.Marketer,
		Marketed:         input.Marketed,
		AvailableForSale: input.AvailableForSale,
		Image:            input.Image,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	view := toView(created)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err == ErrNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	view := toView(product)
	return &view, nil
}

func (s *service) List(ctx context.Context) ([]View, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	return toViews(products), nil
}

func (s *service) ListMarketed(ctx context.Context) ([]View, error) {
	products, err := s.repo.ListMarketed(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list marketed products")
	}
	return toViews(products), nil
}

func (s *service) ListStore(ctx context.Context) ([]View, error) {
	products, err := s.repo.ListAvailableForSale(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list store products")
	}
	return toViews(products), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*View, error) {
	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if input.Price.LessThanOrEqual(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
		}
		updates["price"] = *input.Price
	}
	if input.Marketer != nil {
		updates["marketer"] = *input.Marketer
	}
	if input.Marketed != nil {
		updates["marketed"] = *input.Marketed
	}
	if input.AvailableForSale != nil {
		updates["available_for_sale"] = *input.AvailableForSale
	}
	if input.Image != nil {
		updates["image"] = *input.Image
	}

	if len(updates) > 0 {
		err := s.repo.Update(ctx, id, updates)
		if err == ErrNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
		}
	}

	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if err == ErrNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func toView(p *models.Product) View {
	return View{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price.StringFixed(2),
		Marketer:         p.Marketer,
		Marketed:         p.Marketed,
		AvailableForSale: p.AvailableForSale,
		Image:            p.Image,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toViews(products []models.Product) []View {
	views := make([]View, 0, len(products))
	for i := range products {
		views = append(views, toView(&products[i]))
	}
	return views
}
