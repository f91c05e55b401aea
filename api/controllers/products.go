package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rajchaudar/HR-Dep/api/responses"
	"github.com/rajchaudar/HR-Dep/api/validators"
	productsvc "github.com/rajchaudar/HR-Dep/internal/products"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
)

type productCreateRequest struct {
	Name             string          `json:"name" validate:"required,max=200"`
	Description      string          `json:"description" validate:"max=2000"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	Marketer         string          `json:"marketer" validate:"max=200"`
	Marketed         bool            `json:"marketed"`
	AvailableForSale bool            `json:"availableForSale"`
	Image            string          `json:"image" validate:"max=2048"`
}

// ProductCreate adds a catalog entry.
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload productCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Create(r.Context(), productsvc.CreateInput{
			Name:             validators.SanitizeString(payload.Name, 200),
			Description:      validators.SanitizeString(payload.Description, 2000),
			Price:            payload.Price,
			Marketer:         validators.SanitizeString(payload.Marketer, 200),
			Marketed:         payload.Marketed,
			AvailableForSale: payload.AvailableForSale,
			Image:            validators.SanitizeString(payload.Image, 2048),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"product": view,
		})
	}
}

// ProductList returns the full catalog.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, func(r *http.Request) ([]productsvc.View, error) {
		return svc.List(r.Context())
	})
}

// ProductListMarketed returns entries flagged for marketing placement.
func ProductListMarketed(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, func(r *http.Request) ([]productsvc.View, error) {
		return svc.ListMarketed(r.Context())
	})
}

// ProductListStore returns entries available for sale.
func ProductListStore(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return listHandler(svc, logg, func(r *http.Request) ([]productsvc.View, error) {
		return svc.ListStore(r.Context())
	})
}

func listHandler(svc productsvc.Service, logg *logger.Logger, list func(r *http.Request) ([]productsvc.View, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		views, err := list(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"products": views,
		})
	}
}

// ProductGet returns one catalog entry by id.
func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"product": view,
		})
	}
}

type productUpdateRequest struct {
	Name             *string          `json:"name" validate:"omitempty,max=200"`
	Description      *string          `json:"description" validate:"omitempty,max=2000"`
	Price            *decimal.Decimal `json:"price"`
	Marketer         *string          `json:"marketer" validate:"omitempty,max=200"`
	Marketed         *bool            `json:"marketed"`
	AvailableForSale *bool            `json:"availableForSale"`
	Image            *string          `json:"image" validate:"omitempty,max=2048"`
}

// ProductUpdate applies a partial edit to a catalog entry.
func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload productUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Update(r.Context(), id, productsvc.UpdateInput{
			Name:             payload.Name,
			Description:      payload.Description,
			Price:            payload.Price,
			Marketer:         payload.Marketer,
			Marketed:         payload.Marketed,
			AvailableForSale: payload.AvailableForSale,
			Image:            payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"product": view,
		})
	}
}

// ProductDelete removes a catalog entry.
func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteAck(w, http.StatusOK, "product deleted")
	}
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param)
	}
	return id, nil
}
