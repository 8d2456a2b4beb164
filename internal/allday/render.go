package allday

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StripStyles are the lipgloss styles the renderer draws with.
type StripStyles struct {
	Bar     lipgloss.Style
	Dragged lipgloss.Style
	Today   lipgloss.Style
	Weekend lipgloss.Style
	Blank   lipgloss.Style
}

// DefaultStripStyles returns the stock look: colored bars on a plain
// background with subtle today/weekend column shading.
func DefaultStripStyles() StripStyles {
	return StripStyles{
		Bar:     lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")),
		Dragged: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("203")).Italic(true),
		Today:   lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Weekend: lipgloss.NewStyle().Background(lipgloss.Color("234")),
		Blank:   lipgloss.NewStyle(),
	}
}

// StripRenderer draws a Row as terminal lines, one character cell per
// layout unit.
type StripRenderer struct {
	Styles StripStyles
}

// NewStripRenderer returns a renderer with the default styles.
func NewStripRenderer() *StripRenderer {
	return &StripRenderer{Styles: DefaultStripStyles()}
}

// Render lays the row out at the given width and draws every content
// line, one string per terminal row. Callers clip the result to their
// viewport.
func (sr *StripRenderer) Render(r *Row, width int) []string {
	if width < 1 {
		width = 1
	}
	height := int(math.Ceil(r.PreferredHeight()))
	if height < 1 {
		height = 1
	}
	placements := r.Layout(Rect{W: float64(width), H: float64(height)})

	bg := sr.backgroundClasses(r.Columns(), width)
	lines := make([]string, height)
	for y := range lines {
		lines[y] = sr.renderLine(placements, bg, width, y)
	}
	return lines
}

type barSpan struct {
	x, w int
	view *EntryView
}

func (sr *StripRenderer) renderLine(placements []Placement, bg []uint8, width, y int) string {
	var bars []barSpan
	for _, p := range placements {
		rect := p.View.Rect
		y0 := int(math.Round(rect.Y))
		h := int(math.Round(rect.H))
		if h < 1 {
			h = 1
		}
		if y < y0 || y >= y0+h {
			continue
		}
		x := int(math.Round(rect.X))
		w := int(math.Round(rect.W))
		if x < 0 {
			w += x
			x = 0
		}
		if x+w > width {
			w = width - x
		}
		if w < 1 {
			continue
		}
		bars = append(bars, barSpan{x: x, w: w, view: p.View})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].x < bars[j].x })

	var b strings.Builder
	cursor := 0
	for _, bar := range bars {
		x, w := bar.x, bar.w
		if x < cursor {
			w -= cursor - x
			x = cursor
		}
		if w < 1 {
			continue
		}
		sr.writeBackground(&b, bg, cursor, x)
		b.WriteString(sr.renderBar(bar.view, w))
		cursor = x + w
	}
	sr.writeBackground(&b, bg, cursor, width)
	return b.String()
}

func (sr *StripRenderer) renderBar(v *EntryView, w int) string {
	style := sr.Styles.Bar
	if v.Dragged {
		style = sr.Styles.Dragged
	} else if v.Entry.Calendar != nil && v.Entry.Calendar.Color != "" {
		style = style.Background(lipgloss.Color(v.Entry.Calendar.Color))
	}
	label := ansi.Truncate(v.Entry.Title, w, "…")
	if pad := w - ansi.StringWidth(label); pad > 0 {
		label += strings.Repeat(" ", pad)
	}
	return style.Render(label)
}

const (
	bgBlank uint8 = iota
	bgWeekend
	bgToday
)

// backgroundClasses maps every cell to its column highlight class.
// Today wins over weekend when both apply.
func (sr *StripRenderer) backgroundClasses(columns []DayColumn, width int) []uint8 {
	bg := make([]uint8, width)
	for _, col := range columns {
		x0 := int(math.Round(col.Rect.X))
		x1 := int(math.Round(col.Rect.X + col.Rect.W))
		if x0 < 0 {
			x0 = 0
		}
		if x1 > width {
			x1 = width
		}
		class := bgBlank
		switch {
		case col.Today:
			class = bgToday
		case col.Weekend:
			class = bgWeekend
		}
		for i := x0; i < x1; i++ {
			bg[i] = class
		}
	}
	return bg
}

func (sr *StripRenderer) writeBackground(b *strings.Builder, bg []uint8, from, to int) {
	for from < to {
		class := bg[from]
		run := from
		for run < to && bg[run] == class {
			run++
		}
		style := sr.Styles.Blank
		switch class {
		case bgToday:
			style = sr.Styles.Today
		case bgWeekend:
			style = sr.Styles.Weekend
		}
		b.WriteString(style.Render(strings.Repeat(" ", run-from)))
		from = run
	}
}
