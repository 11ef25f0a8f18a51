// internal/app/features/ingest/routes.go
package ingest

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upload)         // mounted under /ingest
	r.Post("/confirm", h.Confirm) // /ingest/confirm
	r.Post("/cancel", h.Cancel)   // /ingest/cancel
	return r
}
