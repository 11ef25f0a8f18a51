// internal/app/features/occupancy/routes.go
package occupancy

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Grid)           // mounted under /occupancy
	r.Get("/summary", h.Summary) // /occupancy/summary
	return r
}
