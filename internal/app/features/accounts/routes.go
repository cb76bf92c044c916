// internal/app/features/accounts/routes.go
package accounts

import "github.com/go-chi/chi/v5"

// Register mounts the user administration endpoints on the root router.
func Register(r chi.Router, h *Handler) {
	r.Post("/register", h.HandleRegister)
	r.Delete("/delete-user", h.HandleDeleteUser)
	r.Get("/get-guides", h.HandleGetGuides)
	r.Get("/get-coordinators", h.HandleGetCoordinators)
	r.Get("/get-advisors", h.HandleGetAdvisors)
}
