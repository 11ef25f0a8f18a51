// internal/app/features/activity/handler.go

// Package activity serves the recent audit trail: batch outcomes,
// overwrite decisions, problem lifecycle actions.
package activity

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/sallehub/internal/app/features/shared/respond"
	auditstore "github.com/dalemusser/sallehub/internal/app/store/audit"
	"github.com/dalemusser/sallehub/internal/app/system/timeouts"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

type Handler struct {
	Events *auditstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Events: auditstore.New(db), Log: logger}
}

// Recent handles GET /activity?limit=&batch=. With batch set it returns
// that batch's events oldest first; otherwise the newest events overall.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "activity feed")
	defer cancel()

	var (
		events []models.IngestionEvent
		err    error
	)
	if batch := r.URL.Query().Get("batch"); batch != "" {
		events, err = h.Events.GetByBatch(ctx, batch)
	} else {
		events, err = h.Events.GetRecent(ctx, limitParam(r))
	}
	if err != nil {
		respond.Internal(w, h.Log, "loading activity failed", err)
		return
	}
	if events == nil {
		events = []models.IngestionEvent{}
	}
	respond.JSON(w, http.StatusOK, events)
}

func limitParam(r *http.Request) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
