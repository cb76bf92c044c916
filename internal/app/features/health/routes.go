// internal/app/features/health/routes.go
package health

import "github.com/go-chi/chi/v5"

// Register mounts the health endpoint on the root router.
func Register(r chi.Router, h *Handler) {
	r.Get("/health", h.Serve)
}
