package scheduling

import (
	"sort"
	"time"
)

// LayoutItem is the slice of an appointment the day grid cares about.
type LayoutItem struct {
	ID    uint
	Start time.Time
	End   time.Time
}

// ColumnAssignment places one appointment into a horizontal lane of the
// day grid. TotalColumns is the same for every appointment of the day so
// all lanes render at uniform width. Recomputed on every render, never
// persisted.
type ColumnAssignment struct {
	AppointmentID uint `json:"appointment_id"`
	Column        int  `json:"column"`
	TotalColumns  int  `json:"total_columns"`
}

// LayoutDay packs one day's appointments into side-by-side columns such
// that no two appointments in a column overlap. Greedy first-fit over a
// start-sorted sequence: good enough for real booking patterns, not a
// minimal interval coloring for adversarial input.
func LayoutDay(appointments []LayoutItem) map[uint]ColumnAssignment {
	out := make(map[uint]ColumnAssignment, len(appointments))
	if len(appointments) == 0 {
		return out
	}

	sorted := make([]LayoutItem, len(appointments))
	copy(sorted, appointments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].ID < sorted[j].ID
	})

	// columns[i] holds the items already placed in lane i
	var columns [][]LayoutItem

	for _, item := range sorted {
		placed := false
		for i := range columns {
			if columnAccepts(columns[i], item) {
				columns[i] = append(columns[i], item)
				out[item.ID] = ColumnAssignment{AppointmentID: item.ID, Column: i}
				placed = true
				break
			}
		}
		if !placed {
			columns = append(columns, []LayoutItem{item})
			out[item.ID] = ColumnAssignment{AppointmentID: item.ID, Column: len(columns) - 1}
		}
	}

	total := len(columns)
	for id, ca := range out {
		ca.TotalColumns = total
		out[id] = ca
	}

	return out
}

func columnAccepts(members []LayoutItem, item LayoutItem) bool {
	for _, m := range members {
		if Overlaps(
			Interval{Start: m.Start, End: m.End},
			Interval{Start: item.Start, End: item.End},
		) {
			return false
		}
	}
	return true
}
