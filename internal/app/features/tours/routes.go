// internal/app/features/tours/routes.go
package tours

import "github.com/go-chi/chi/v5"

// Register mounts the public application endpoints on the root router.
func Register(r chi.Router, h *Handler) {
	r.Post("/apply-tour", h.HandleApplyTour)
	r.Post("/apply-individual-tour", h.HandleApplyIndividualTour)
}
