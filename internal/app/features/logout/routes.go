// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// Register mounts the logout endpoint on the root router.
func Register(r chi.Router, h *Handler) {
	r.Post("/logout", h.HandleLogout)
}
