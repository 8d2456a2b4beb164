package allday

import (
	"sort"
	"time"

	"alldayview/internal/calendar"
)

// Placement pairs a view with its assigned lane.
type Placement struct {
	View *EntryView
	Lane int
}

// Resolve assigns every view a lane such that entries with overlapping
// date spans never share one. Views are scanned by start date with ties
// broken by entry ID, and each takes the lowest lane whose entries all
// end strictly before it starts. For interval sets this greedy first
// fit uses the minimum possible number of lanes. The input slice is
// left untouched and its order does not affect the result.
func Resolve(views []*EntryView, loc *time.Location) []Placement {
	sorted := make([]*EntryView, len(views))
	copy(sorted, views)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Entry, sorted[j].Entry
		sa, sb := a.StartDate(loc), b.StartDate(loc)
		if sa != sb {
			return sa.Before(sb)
		}
		return a.ID < b.ID
	})

	placements := make([]Placement, 0, len(sorted))
	var laneEnds []calendar.Date
	for _, v := range sorted {
		start := v.Entry.StartDate(loc)
		end := v.Entry.EndDate(loc)
		if end.Before(start) {
			end = start
		}
		lane := -1
		for i, laneEnd := range laneEnds {
			if laneEnd.Before(start) {
				lane = i
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, end)
		} else {
			laneEnds[lane] = end
		}
		placements = append(placements, Placement{View: v, Lane: lane})
	}
	return placements
}
