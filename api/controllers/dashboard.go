package controllers

import (
	"net/http"

	"github.com/rajchaudar/HR-Dep/api/responses"
	authsvc "github.com/rajchaudar/HR-Dep/internal/auth"
	productsvc "github.com/rajchaudar/HR-Dep/internal/products"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
)

// Dashboard returns the storefront overview consumed by the admin page:
// registered users and the full catalog in one payload.
func Dashboard(auth authsvc.Service, products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth == nil || products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard services unavailable"))
			return
		}

		userViews, err := auth.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productViews, err := products.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"users":    userViews,
			"products": productViews,
		})
	}
}
