package controllers

import (
	"net/http"

	"github.com/rajchaudar/HR-Dep/api/responses"
	"github.com/rajchaudar/HR-Dep/api/validators"
	checkoutsvc "github.com/rajchaudar/HR-Dep/internal/checkout"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
	"github.com/rajchaudar/HR-Dep/pkg/types"
)

type checkoutRequest struct {
	Name     string        `json:"name" validate:"required,max=200"`
	Email    string        `json:"email" validate:"required,email"`
	Contact  string        `json:"contact" validate:"required,max=40"`
	Shipping types.Address `json:"address" validate:"required"`
}

// Checkout converts the caller's cart into a pending order and returns the
// payment client secret for the frontend to confirm.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), checkoutsvc.Input{
			UserID:   userID,
			Name:     validators.SanitizeString(payload.Name, 200),
			Email:    validators.NormalizeEmail(payload.Email),
			Contact:  validators.SanitizeString(payload.Contact, 40),
			Shipping: payload.Shipping,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, map[string]any{
			"success":      true,
			"message":      "order placed",
			"orderId":      result.OrderID,
			"clientSecret": result.ClientSecret,
			"totalAmount":  result.TotalAmount,
		})
	}
}
