// internal/app/system/roster/roster.go

// Package roster holds the static campus configuration: the expected-cohort
// checklist, the fixed room inventory, and the canonical day and timeslot
// labels. It is configuration, not state: nothing here mutates after
// process start, and every accessor returns a copy so callers cannot
// corrupt the canonical slices.
package roster

import "fmt"

// checklist is the authoritative roster of cohorts expected to have a
// schedule on file, grouped by program track. Grouping is cosmetic; matching
// is order-insensitive, but the slice order is the canonical order for
// "missing cohorts" in integration reports.
var checklist = []string{
	// Développement Digital (DEV)
	"DEV101", "DEV102", "DEV103", "DEV104", "DEV105", "DEV106",
	"DEVOAM201", "DEVOAM202", "DEVORVA201", "DEVOWFS201",

	// Infrastructure Digitale (ID)
	"ID101", "ID102", "ID103", "ID104", "ID105", "ID106",
	"IDOSR201", "IDOIOT201", "IDOCC201", "IDOCC202", "IDOCS201", "IDOCS202",

	// Intelligence Artificielle (IA)
	"IA101", "IA102", "IA103", "IA104",
	"IAODC201", "IAOBD201", "IAOADA201", "IAOADA202",

	// Digital Design (DES)
	"DES101", "DES102",
	"DESOUX201", "DESOUI201",
}

// rooms is the closed room inventory: two named series with numeric
// suffixes. Slice order is the matrix row order.
var rooms = buildRooms()

func buildRooms() []string {
	out := make([]string, 0, 26)
	for i := 1; i <= 18; i++ {
		out = append(out, fmt.Sprintf("DIA-SN %d", i))
	}
	for i := 1; i <= 8; i++ {
		out = append(out, fmt.Sprintf("DIA-SDC %d", i))
	}
	return out
}

// timeSlots are the four contiguous half-day windows, in display order.
// Anything starting at 18:30 or later is outside the grid.
var timeSlots = []string{
	"08:30 - 11:00",
	"11:00 - 13:30",
	"13:30 - 16:00",
	"16:00 - 18:30",
}

// days are the six canonical day labels, Monday first. The campus runs
// Monday through Saturday; there is no Sunday column.
var days = []string{
	"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi",
}

// dayAliases maps raw day strings from extraction output onto the
// canonical labels. Keys are compared verbatim; extraction services are
// prompted for French day names but occasionally echo English ones.
var dayAliases = map[string]string{
	"Lundi":     "Lundi",
	"Mardi":     "Mardi",
	"Mercredi":  "Mercredi",
	"Jeudi":     "Jeudi",
	"Vendredi":  "Vendredi",
	"Samedi":    "Samedi",
	"Monday":    "Lundi",
	"Tuesday":   "Mardi",
	"Wednesday": "Mercredi",
	"Thursday":  "Jeudi",
	"Friday":    "Vendredi",
	"Saturday":  "Samedi",
}

var (
	roomSet = toSet(rooms)
	slotSet = toSet(timeSlots)
	daySet  = toSet(days)
)

func toSet(ss []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}

// Checklist returns the expected-cohort roster in canonical order.
func Checklist() []string {
	out := make([]string, len(checklist))
	copy(out, checklist)
	return out
}

// Rooms returns the fixed room inventory in matrix row order.
func Rooms() []string {
	out := make([]string, len(rooms))
	copy(out, rooms)
	return out
}

// TimeSlots returns the four canonical half-day windows in column order.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// Days returns the six canonical day labels, Lundi first.
func Days() []string {
	out := make([]string, len(days))
	copy(out, days)
	return out
}

// MapDay resolves a raw day string to its canonical label. The second
// return is false when the string is not a recognized day; callers decide
// whether to keep or drop the raw value.
func MapDay(raw string) (string, bool) {
	d, ok := dayAliases[raw]
	return d, ok
}

// InInventory reports whether room is part of the fixed inventory.
func InInventory(room string) bool {
	_, ok := roomSet[room]
	return ok
}

// IsCanonicalSlot reports whether slot is one of the four grid windows.
func IsCanonicalSlot(slot string) bool {
	_, ok := slotSet[slot]
	return ok
}

// IsCanonicalDay reports whether day is one of the six canonical labels.
func IsCanonicalDay(day string) bool {
	_, ok := daySet[day]
	return ok
}
