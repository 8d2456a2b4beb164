package allday

// Rect is an axis-aligned rectangle in layout units.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Insets are edge distances around a content box.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Vertical returns the summed top and bottom insets.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// Horizontal returns the summed left and right insets.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }
