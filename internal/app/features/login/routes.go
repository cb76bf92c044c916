// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Register mounts the authentication endpoints on the root router.
func Register(r chi.Router, h *Handler) {
	r.Post("/login", h.HandleLogin)
	r.Get("/authorization", h.HandleAuthorization)
}
