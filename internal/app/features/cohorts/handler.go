// internal/app/features/cohorts/handler.go

// Package cohorts serves the cohort sidebar: every ingested record with
// its status, the expected-cohort checklist with ingestion marks, and the
// compliance ratio.
package cohorts

import (
	"errors"
	"net/http"

	"github.com/dalemusser/sallehub/internal/app/features/shared/respond"
	cohortstore "github.com/dalemusser/sallehub/internal/app/store/cohorts"
	"github.com/dalemusser/sallehub/internal/app/system/integration"
	"github.com/dalemusser/sallehub/internal/app/system/normalize"
	"github.com/dalemusser/sallehub/internal/app/system/roster"
	"github.com/dalemusser/sallehub/internal/app/system/timeouts"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Cohorts *cohortstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Cohorts: cohortstore.New(db), Log: logger}
}

type checklistItem struct {
	Cohort   string `json:"cohort"`
	Ingested bool   `json:"ingested"`
}

type listResponse struct {
	Compliance    int                   `json:"compliance"`
	ActiveCount   int                   `json:"active_count"`
	TotalExpected int                   `json:"total_expected"`
	Checklist     []checklistItem       `json:"checklist"`
	Cohorts       []models.CohortRecord `json:"cohorts"`
}

// List handles GET /cohorts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "cohort list")
	defer cancel()

	all, err := h.Cohorts.GetAll(ctx)
	if err != nil {
		respond.Internal(w, h.Log, "loading cohorts failed", err)
		return
	}
	if all == nil {
		all = []models.CohortRecord{}
	}

	verified := map[string]bool{}
	active := 0
	for _, rec := range all {
		if rec.Status == models.StatusOK {
			verified[rec.ID] = true
			active++
		}
	}

	expected := roster.Checklist()
	checklist := make([]checklistItem, 0, len(expected))
	for _, id := range expected {
		checklist = append(checklist, checklistItem{Cohort: id, Ingested: verified[id]})
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Compliance:    integration.ComplianceRatio(active, len(expected)),
		ActiveCount:   active,
		TotalExpected: len(expected),
		Checklist:     checklist,
		Cohorts:       all,
	})
}

// Detail handles GET /cohorts/{id}. The path ID is normalized before
// lookup, so "dev 101" and "DEV101" address the same record.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	id := normalize.CohortID(chi.URLParam(r, "id"))
	if id == "" {
		respond.Error(w, http.StatusBadRequest, "empty cohort id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "cohort detail")
	defer cancel()

	rec, err := h.Cohorts.Get(ctx, id)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, rec)
	case errors.Is(err, mongo.ErrNoDocuments):
		respond.Error(w, http.StatusNotFound, "cohort not found")
	default:
		respond.Internal(w, h.Log, "loading cohort failed", err)
	}
}
