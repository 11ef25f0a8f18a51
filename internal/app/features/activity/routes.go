// internal/app/features/activity/routes.go
package activity

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Recent) // mounted under /activity
	return r
}
