// internal/app/features/reports/handler.go

// Package reports serves the integration reports produced at the end of
// each ingestion batch.
package reports

import (
	"errors"
	"net/http"

	"github.com/dalemusser/sallehub/internal/app/features/shared/respond"
	reportstore "github.com/dalemusser/sallehub/internal/app/store/reports"
	"github.com/dalemusser/sallehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Reports *reportstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Reports: reportstore.New(db), Log: logger}
}

// Latest handles GET /reports/latest. 404 until the first batch has run.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "latest report")
	defer cancel()

	rep, err := h.Reports.Latest(ctx)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, rep)
	case errors.Is(err, mongo.ErrNoDocuments):
		respond.Error(w, http.StatusNotFound, "no integration report yet")
	default:
		respond.Internal(w, h.Log, "loading latest report failed", err)
	}
}
