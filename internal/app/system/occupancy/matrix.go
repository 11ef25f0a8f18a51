// internal/app/system/occupancy/matrix.go

// Package occupancy derives the room×timeslot occupancy view for one day
// from a snapshot of active cohort records, and answers the aggregate
// queries the dashboard needs (free-room counts, filtered room lists,
// incident overlays). Everything here is a pure function over its inputs:
// no store handles, no caching, no hidden state.
package occupancy

import (
	"strings"

	"github.com/dalemusser/sallehub/internal/app/system/roster"
	"github.com/dalemusser/sallehub/internal/domain/models"
)

// Cell is the occupant of one (room, slot) position.
type Cell struct {
	Cohort    string `json:"cohort"`
	Professor string `json:"professor"`
}

// Matrix maps room → timeslot → occupant for a single day. Every room in
// the fixed inventory is present as a key, occupied or not; rooms outside
// the inventory never appear.
type Matrix map[string]map[string]Cell

// Build derives the matrix for day from the given cohort records.
//
// Callers pass records in store listing order; that order is the tie-break
// authority for double-booked cells: when two cohorts claim the same
// (room, slot), the later record in the slice wins, silently. Entries whose
// room is outside the fixed inventory or whose slot is not one of the four
// canonical windows are dropped: the grid has nowhere to show them.
//
// Records whose status is not OK contribute nothing.
func Build(records []models.CohortRecord, day string) Matrix {
	m := make(Matrix, 26)
	for _, room := range roster.Rooms() {
		m[room] = make(map[string]Cell, 4)
	}

	for _, rec := range records {
		if rec.Status != models.StatusOK {
			continue
		}
		for _, e := range rec.Entries {
			if e.Day != day {
				continue
			}
			cells, ok := m[e.Room]
			if !ok {
				continue
			}
			if !roster.IsCanonicalSlot(e.TimeSlot) {
				continue
			}
			cells[e.TimeSlot] = Cell{Cohort: rec.ID, Professor: e.Professor}
		}
	}

	return m
}

// FreeRoomCount returns how many inventory rooms have all four slots empty.
func FreeRoomCount(m Matrix) int {
	n := 0
	for _, room := range roster.Rooms() {
		if len(m[room]) == 0 {
			n++
		}
	}
	return n
}

// SlotFilter is the per-column occupancy constraint for FilterRooms.
type SlotFilter string

const (
	FilterAll      SlotFilter = "all"
	FilterFree     SlotFilter = "free"
	FilterOccupied SlotFilter = "occupied"
)

// ParseSlotFilter maps a query-string value to a SlotFilter; anything
// unrecognized (including empty) means no constraint.
func ParseSlotFilter(s string) SlotFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return FilterFree
	case "occupied":
		return FilterOccupied
	default:
		return FilterAll
	}
}

// FilterRooms returns the inventory rooms, in inventory order, whose ID
// contains nameSubstring (case-insensitive) and whose occupancy state
// matches the configured filter for every timeslot. A missing map entry in
// filters means FilterAll for that slot.
func FilterRooms(m Matrix, nameSubstring string, filters map[string]SlotFilter) []string {
	needle := strings.ToLower(strings.TrimSpace(nameSubstring))

	out := make([]string, 0, 26)
	for _, room := range roster.Rooms() {
		if needle != "" && !strings.Contains(strings.ToLower(room), needle) {
			continue
		}
		if roomMatchesFilters(m[room], filters) {
			out = append(out, room)
		}
	}
	return out
}

func roomMatchesFilters(cells map[string]Cell, filters map[string]SlotFilter) bool {
	for _, slot := range roster.TimeSlots() {
		_, occupied := cells[slot]
		switch filters[slot] {
		case FilterFree:
			if occupied {
				return false
			}
		case FilterOccupied:
			if !occupied {
				return false
			}
		}
	}
	return true
}

// IncidentOverlay returns the first unresolved problem reported for room,
// in ledger order. The second return is false when the room has none.
func IncidentOverlay(room string, problems []models.ReportedProblem) (models.ReportedProblem, bool) {
	for _, p := range problems {
		if p.Room == room && p.Status != models.ProblemHandled {
			return p, true
		}
	}
	return models.ReportedProblem{}, false
}
