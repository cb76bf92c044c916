// internal/app/features/schedules/routes.go
package schedules

import "github.com/go-chi/chi/v5"

// Register mounts the availability endpoints on the root router.
func Register(r chi.Router, h *Handler) {
	r.Post("/save-schedule", h.HandleSaveSchedule)
	r.Get("/get-schedule", h.HandleGetSchedule)
	r.Get("/get-available-guides", h.HandleAvailableGuides)
}
