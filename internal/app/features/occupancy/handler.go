// internal/app/features/occupancy/handler.go

// Package occupancy serves the room grid: which cohort sits in which room
// at each time slot of a day, filtered by room name and per-slot
// free/occupied state, with active facility problems overlaid per room.
package occupancy

import (
	"net/http"

	"github.com/dalemusser/sallehub/internal/app/features/shared/respond"
	cohortstore "github.com/dalemusser/sallehub/internal/app/store/cohorts"
	problemstore "github.com/dalemusser/sallehub/internal/app/store/problems"
	"github.com/dalemusser/sallehub/internal/app/system/normalize"
	"github.com/dalemusser/sallehub/internal/app/system/occupancy"
	"github.com/dalemusser/sallehub/internal/app/system/roster"
	"github.com/dalemusser/sallehub/internal/app/system/timeouts"
	"github.com/dalemusser/sallehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Cohorts  *cohortstore.Store
	Problems *problemstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Cohorts:  cohortstore.New(db),
		Problems: problemstore.New(db),
		Log:      logger,
	}
}

type slotCell struct {
	TimeSlot  string `json:"time_slot"`
	Cohort    string `json:"cohort,omitempty"`
	Professor string `json:"professor,omitempty"`
}

type roomRow struct {
	Room    string                  `json:"room"`
	Slots   []slotCell              `json:"slots"`
	Problem *models.ReportedProblem `json:"problem,omitempty"`
}

type gridResponse struct {
	Day       string    `json:"day"`
	TimeSlots []string  `json:"time_slots"`
	FreeRooms int       `json:"free_rooms"`
	Rooms     []roomRow `json:"rooms"`
}

// Grid handles GET /occupancy?day=&search=&s1..s4=.
//
// day defaults to the first canonical day. s1..s4 take "all", "free" or
// "occupied", one per time slot in canonical slot order.
func (h *Handler) Grid(w http.ResponseWriter, r *http.Request) {
	day := normalize.QueryParam(r.URL.Query().Get("day"))
	if day == "" {
		day = roster.Days()[0]
	}
	if !roster.IsCanonicalDay(day) {
		respond.Error(w, http.StatusBadRequest, "unknown day")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "occupancy grid")
	defer cancel()

	active, err := h.Cohorts.GetActive(ctx)
	if err != nil {
		respond.Internal(w, h.Log, "loading active cohorts failed", err)
		return
	}
	problems, err := h.Problems.ListActive(ctx)
	if err != nil {
		respond.Internal(w, h.Log, "loading problems failed", err)
		return
	}

	matrix := occupancy.Build(active, day)
	rooms := occupancy.FilterRooms(matrix, r.URL.Query().Get("search"), slotFilters(r))

	slots := roster.TimeSlots()
	rows := make([]roomRow, 0, len(rooms))
	for _, room := range rooms {
		row := roomRow{Room: room, Slots: make([]slotCell, 0, len(slots))}
		for _, slot := range slots {
			cell := matrix[room][slot]
			row.Slots = append(row.Slots, slotCell{
				TimeSlot:  slot,
				Cohort:    cell.Cohort,
				Professor: cell.Professor,
			})
		}
		if p, ok := occupancy.IncidentOverlay(room, problems); ok {
			row.Problem = &p
		}
		rows = append(rows, row)
	}

	respond.JSON(w, http.StatusOK, gridResponse{
		Day:       day,
		TimeSlots: slots,
		FreeRooms: occupancy.FreeRoomCount(matrix),
		Rooms:     rows,
	})
}

type summaryResponse struct {
	Day        string                   `json:"day"`
	FreeRooms  int                      `json:"free_rooms"`
	TotalRooms int                      `json:"total_rooms"`
	Problems   []models.ReportedProblem `json:"problems"`
}

// Summary handles GET /occupancy/summary?day=.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	day := normalize.QueryParam(r.URL.Query().Get("day"))
	if day == "" {
		day = roster.Days()[0]
	}
	if !roster.IsCanonicalDay(day) {
		respond.Error(w, http.StatusBadRequest, "unknown day")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "occupancy summary")
	defer cancel()

	active, err := h.Cohorts.GetActive(ctx)
	if err != nil {
		respond.Internal(w, h.Log, "loading active cohorts failed", err)
		return
	}
	problems, err := h.Problems.ListActive(ctx)
	if err != nil {
		respond.Internal(w, h.Log, "loading problems failed", err)
		return
	}
	if problems == nil {
		problems = []models.ReportedProblem{}
	}

	matrix := occupancy.Build(active, day)
	respond.JSON(w, http.StatusOK, summaryResponse{
		Day:        day,
		FreeRooms:  occupancy.FreeRoomCount(matrix),
		TotalRooms: len(roster.Rooms()),
		Problems:   problems,
	})
}

// slotFilters reads s1..s4 in canonical slot order. Missing or unknown
// values mean "all".
func slotFilters(r *http.Request) map[string]occupancy.SlotFilter {
	keys := []string{"s1", "s2", "s3", "s4"}
	out := make(map[string]occupancy.SlotFilter, len(keys))
	for i, slot := range roster.TimeSlots() {
		if i >= len(keys) {
			break
		}
		out[slot] = occupancy.ParseSlotFilter(r.URL.Query().Get(keys[i]))
	}
	return out
}
