// internal/app/features/problems/handler.go

// Package problems is the facility-incident ledger surface: staff report
// a problem against a room, walk it through Waiting, and close it as
// Handled, which removes it from the ledger.
package problems

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/sallehub/internal/app/features/shared/respond"
	problemstore "github.com/dalemusser/sallehub/internal/app/store/problems"
	"github.com/dalemusser/sallehub/internal/app/system/auditlog"
	"github.com/dalemusser/sallehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/sallehub/internal/app/system/roster"
	"github.com/dalemusser/sallehub/internal/app/system/timeouts"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Problems *problemstore.Store
	Audit    *auditlog.Logger
	Log      *zap.Logger
}

func NewHandler(problems *problemstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{Problems: problems, Audit: audit, Log: logger}
}

// List handles GET /problems: every problem not yet handled, report order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "problem list")
	defer cancel()

	problems, err := h.Problems.ListActive(ctx)
	if err != nil {
		respond.Internal(w, h.Log, "loading problems failed", err)
		return
	}
	if problems == nil {
		problems = []models.ReportedProblem{}
	}
	respond.JSON(w, http.StatusOK, problems)
}

type reportRequest struct {
	Room        string `json:"room"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// Report handles POST /problems.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !roster.InInventory(req.Room) {
		respond.Error(w, http.StatusBadRequest, "unknown room")
		return
	}
	desc := htmlsanitize.StripTags(req.Description)
	if desc == "" {
		respond.Error(w, http.StatusBadRequest, "empty description")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "problem report")
	defer cancel()

	p, err := h.Problems.Report(ctx, req.Room, desc, req.Priority)
	switch {
	case err == nil:
		h.Audit.ProblemReported(ctx, p.Room, p.ID)
		respond.JSON(w, http.StatusCreated, p)
	case errors.Is(err, problemstore.ErrBadPriority):
		respond.Error(w, http.StatusBadRequest, "unknown priority")
	default:
		respond.Internal(w, h.Log, "saving problem failed", err)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /problems/{id}/status. Setting status Handled
// removes the problem from the ledger for good.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "problem status update")
	defer cancel()

	err := h.Problems.UpdateStatus(ctx, id, req.Status)
	switch {
	case err == nil:
		h.Audit.ProblemUpdated(ctx, id, req.Status)
		respond.JSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
	case errors.Is(err, problemstore.ErrBadStatus):
		respond.Error(w, http.StatusBadRequest, "unknown status")
	case errors.Is(err, problemstore.ErrUnknownProblem):
		respond.Error(w, http.StatusNotFound, "problem not found")
	default:
		respond.Internal(w, h.Log, "updating problem failed", err)
	}
}
