package controllers

import (
	"context"
	"net/http"

	"github.com/rajchaudar/HR-Dep/api/responses"
	"github.com/rajchaudar/HR-Dep/pkg/config"
	pkgerrors "github.com/rajchaudar/HR-Dep/pkg/errors"
	"github.com/rajchaudar/HR-Dep/pkg/logger"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-App-Env", cfg.App.Env)
		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"status":  "live",
		})
	}
}

// HealthReady reports readiness, checking the database when one is wired.
func HealthReady(cfg *config.Config, database Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-App-Env", cfg.App.Env)
		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"status":  "ready",
		})
	}
}
