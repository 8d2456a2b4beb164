package scrollpane

import "math"

// Scrollbar is the range model a pane keeps in sync with its content:
// Value runs from 0 (top) to Max, VisibleAmount is the thumb's share
// of the range, and the increments are the per-step scroll distances.
type Scrollbar struct {
	Max            float64
	Value          float64
	VisibleAmount  float64
	UnitIncrement  float64
	BlockIncrement float64
}

// Thumb maps the scrollbar onto a track of the given height, returning
// the half-open cell range the thumb covers. A scrollbar with no range
// fills the whole track.
func (sb *Scrollbar) Thumb(height int) (from, to int) {
	if height < 1 {
		return 0, 0
	}
	total := sb.Max + sb.VisibleAmount
	if sb.Max <= 0 || total <= 0 {
		return 0, height
	}
	length := int(math.Round(float64(height) * sb.VisibleAmount / total))
	if length < 1 {
		length = 1
	}
	from = int(math.Round(float64(height) * sb.Value / total))
	if from+length > height {
		from = height - length
	}
	if from < 0 {
		from = 0
	}
	return from, from + length
}
