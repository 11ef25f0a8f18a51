// internal/app/features/problems/routes.go
package problems

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the incident ledger. Reading is open; reporting and
// status changes go through requireStaff.
func Routes(h *Handler, requireStaff func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List) // mounted under /problems
	r.Group(func(r chi.Router) {
		r.Use(requireStaff)
		r.Post("/", h.Report)
		r.Post("/{id}/status", h.UpdateStatus)
	})
	return r
}
