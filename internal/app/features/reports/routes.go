// internal/app/features/reports/routes.go
package reports

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/latest", h.Latest) // mounted under /reports
	return r
}
