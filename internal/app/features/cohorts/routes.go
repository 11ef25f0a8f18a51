// internal/app/features/cohorts/routes.go
package cohorts

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)        // mounted under /cohorts
	r.Get("/{id}", h.Detail)  // /cohorts/{id}
	return r
}
