// Package health exposes the liveness endpoint load balancers poll.
package health

import (
	"context"
	"net/http"

	"github.com/dalemusser/tourhub/internal/app/system/httpjson"
	"github.com/dalemusser/tourhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger reports whether the database answers within the context deadline.
// *mongo.Client satisfies it through a thin adapter in bootstrap.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	DB  Pinger
	Log *zap.Logger
}

func NewHandler(db Pinger, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and {"status":"ok","database":"connected"}.
// On DB failure: 503 and {"status":"error","database":"disconnected",...}.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		h.Log.Error("health check: database ping failed", zap.Error(err))
		httpjson.Respond(w, http.StatusServiceUnavailable, healthResponse{
			Status:   "error",
			Database: "disconnected",
			Message:  "Database unavailable",
			Error:    err.Error(),
		})
		return
	}

	httpjson.Respond(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Database: "connected",
	})
}
