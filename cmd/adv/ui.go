package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"alldayview/internal/allday"
	"alldayview/internal/calendar"
	"alldayview/internal/ics"
	"alldayview/internal/scrollpane"
)

// applyScrollMsg carries a pane mutation from the autoscroll goroutine
// onto the UI goroutine.
type applyScrollMsg struct {
	fn func()
}

// calendarChangedMsg signals that the watched ICS file changed on disk.
type calendarChangedMsg struct{}

// headerLines is the number of chrome lines above the strip: the title
// bar and the day header.
const headerLines = 2

type keyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Today     key.Binding
	MoreDays  key.Binding
	FewerDays key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.Today, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.Today},
		{k.MoreDays, k.FewerDays},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

var keys = keyMap{
	PrevDay: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous day"),
	),
	NextDay: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next day"),
	),
	PrevWeek: key.NewBinding(
		key.WithKeys("shift+left", "H"),
		key.WithHelp("shift+←", "previous week"),
	),
	NextWeek: key.NewBinding(
		key.WithKeys("shift+right", "L"),
		key.WithHelp("shift+→", "next week"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	MoreDays: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more days"),
	),
	FewerDays: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "fewer days"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).Padding(0, 1)
	rangeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	dayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	weekendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	trackStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	thumbStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type uiModel struct {
	store        *calendar.Store
	row          *allday.Row
	pane         *scrollpane.Pane
	scrollbar    *scrollpane.Scrollbar
	renderer     *allday.StripRenderer
	auto         *scrollpane.Autoscroller
	calendarPath string

	width  int
	height int
	help   help.Model

	// Drag state. dragSource is the store entry under the pointer at
	// press time; the row shows a detached copy until release.
	dragSource *calendar.Entry
	dragStart  time.Time
	dragEnd    time.Time
	dragAnchor int
}

func newModel(store *calendar.Store, row *allday.Row, pane *scrollpane.Pane, scrollbar *scrollpane.Scrollbar, calendarPath string) uiModel {
	return uiModel{
		store:        store,
		row:          row,
		pane:         pane,
		scrollbar:    scrollbar,
		renderer:     allday.NewStripRenderer(),
		calendarPath: calendarPath,
		help:         help.New(),
	}
}

func (m uiModel) Init() tea.Cmd {
	return nil
}

// layoutPane sizes the pane's viewport for the current terminal and
// returns the strip's width and height in cells.
func (m uiModel) layoutPane() (contentW, viewportH int) {
	contentW = m.width - 1
	if contentW < 1 {
		contentW = 1
	}
	viewportH = int(math.Ceil(m.pane.PreferredHeight()))
	if avail := m.height - headerLines - 2; m.height > 0 && viewportH > avail {
		viewportH = avail
	}
	if viewportH < 1 {
		viewportH = 1
	}
	m.pane.SetViewport(float64(contentW), float64(viewportH))
	return contentW, viewportH
}

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.PrevDay):
			m.row.SetDate(m.row.Date().AddDays(-1))
		case key.Matches(msg, keys.NextDay):
			m.row.SetDate(m.row.Date().AddDays(1))
		case key.Matches(msg, keys.PrevWeek):
			m.row.SetDate(m.row.Date().AddDays(-7))
		case key.Matches(msg, keys.NextWeek):
			m.row.SetDate(m.row.Date().AddDays(7))
		case key.Matches(msg, keys.Today):
			m.row.SetDate(calendar.DateOf(time.Now().In(m.store.Location())))
		case key.Matches(msg, keys.MoreDays):
			if n := m.row.NumberOfDays(); n < 31 {
				m.row.SetNumberOfDays(n + 1)
			}
		case key.Matches(msg, keys.FewerDays):
			if n := m.row.NumberOfDays(); n > 1 {
				m.row.SetNumberOfDays(n - 1)
			}
		case key.Matches(msg, keys.Up):
			m.pane.ScrollBy(m.scrollbar.UnitIncrement)
		case key.Matches(msg, keys.Down):
			m.pane.ScrollBy(-m.scrollbar.UnitIncrement)
		case key.Matches(msg, keys.PageUp):
			m.pane.ScrollBy(m.scrollbar.BlockIncrement)
		case key.Matches(msg, keys.PageDown):
			m.pane.ScrollBy(-m.scrollbar.BlockIncrement)
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case applyScrollMsg:
		msg.fn()
		return m, nil

	case calendarChangedMsg:
		if m.calendarPath != "" {
			if err := ics.Sync(m.store, m.calendarPath); err != nil {
				log.Warn("reimport failed", "path", m.calendarPath, "err", err)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layoutPane()
		return m, nil
	}
	return m, nil
}

func (m uiModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.pane.ScrollBy(m.scrollbar.UnitIncrement)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.pane.ScrollBy(-m.scrollbar.UnitIncrement)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		contentW, _ := m.layoutPane()
		cx, cy, ok := m.stripCell(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		v := m.row.ViewAt(cx, cy)
		if v == nil {
			return m, nil
		}
		src := v.Entry
		m.dragSource = src
		m.dragStart = src.Start
		m.dragEnd = src.End
		m.dragAnchor = m.dayIndexAt(cx, contentW)
		ghost := *src
		m.row.SetDragged(&ghost)
		return m, nil

	case tea.MouseActionMotion:
		if m.dragSource == nil {
			return m, nil
		}
		contentW, _ := m.layoutPane()
		delta := m.dayIndexAt(float64(msg.X), contentW) - m.dragAnchor
		ghost := *m.dragSource
		ghost.Start = m.dragStart.AddDate(0, 0, delta)
		ghost.End = m.dragEnd.AddDate(0, 0, delta)
		m.row.SetDragged(&ghost)
		m.auto.MouseDragged(float64(msg.Y - headerLines))
		return m, nil

	case tea.MouseActionRelease:
		if m.dragSource == nil {
			return m, nil
		}
		m.auto.Stop()
		if d := m.row.Dragged(); d != nil && !d.Entry.Start.Equal(m.dragStart) {
			if m.dragSource.Recurring() {
				log.Debug("dropping recurring entry move", "entry", m.dragSource.Title)
			} else {
				m.store.SetEntryInterval(m.dragSource, d.Entry.Start, d.Entry.End)
			}
		}
		m.row.ClearDragged()
		m.dragSource = nil
		return m, nil
	}
	return m, nil
}

// stripCell maps terminal coordinates to strip content coordinates,
// folding in the scroll offset. ok is false outside the strip.
func (m uiModel) stripCell(x, y int) (cx, cy float64, ok bool) {
	_, viewportH := m.layoutPane()
	sy := y - headerLines
	if sy < 0 || sy >= viewportH {
		return 0, 0, false
	}
	cy = float64(sy) + math.Round(-m.pane.TranslateY())
	return float64(x), cy, true
}

// dayIndexAt returns the window day index under content column x.
func (m uiModel) dayIndexAt(x float64, contentW int) int {
	_, days := m.row.Window()
	for i, col := range m.row.Columns() {
		x0 := math.Round(col.Rect.X)
		x1 := math.Round(col.Rect.X + col.Rect.W)
		if x >= x0 && x < x1 {
			return i
		}
	}
	if x < 0 {
		return 0
	}
	if idx := int(x * float64(days) / float64(contentW)); idx < days {
		return idx
	}
	return days - 1
}

func (m uiModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	contentW, viewportH := m.layoutPane()
	lines := m.renderer.Render(m.row, contentW)
	visible := m.pane.Clip(lines)

	var b strings.Builder
	b.WriteString(m.renderTitleBar())
	b.WriteString("\n")
	b.WriteString(m.renderDayHeader(contentW))
	b.WriteString("\n")

	thumbFrom, thumbTo := m.scrollbar.Thumb(viewportH)
	blank := strings.Repeat(" ", contentW)
	for i := 0; i < viewportH; i++ {
		if i < len(visible) {
			b.WriteString(visible[i])
		} else {
			b.WriteString(blank)
		}
		b.WriteString(m.scrollGlyph(i, thumbFrom, thumbTo))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func (m uiModel) renderTitleBar() string {
	start, days := m.row.Window()
	end := start.AddDays(days - 1)
	loc := m.store.Location()
	rangeText := fmt.Sprintf("%s - %s",
		start.Time(loc).Format("Mon Jan 2"),
		end.Time(loc).Format("Mon Jan 2 2006"))
	return titleStyle.Render("all-day") + rangeStyle.Render(rangeText)
}

func (m uiModel) renderDayHeader(contentW int) string {
	var b strings.Builder
	cursor := 0
	for _, col := range m.row.Columns() {
		x0 := int(math.Round(col.Rect.X))
		x1 := int(math.Round(col.Rect.X + col.Rect.W))
		if x1 > contentW {
			x1 = contentW
		}
		w := x1 - x0
		if w < 1 {
			continue
		}
		for cursor < x0 {
			b.WriteString(" ")
			cursor++
		}
		label := col.Date.Time(m.store.Location()).Format("Mon 2")
		if len(label) > w {
			label = label[:w]
		}
		label += strings.Repeat(" ", w-len(label))
		style := dayStyle
		switch {
		case col.Today:
			style = todayStyle
		case col.Weekend:
			style = weekendStyle
		}
		b.WriteString(style.Render(label))
		cursor = x1
	}
	for cursor < contentW {
		b.WriteString(" ")
		cursor++
	}
	return b.String()
}

func (m uiModel) scrollGlyph(line, thumbFrom, thumbTo int) string {
	if m.scrollbar.Max <= 0 {
		return " "
	}
	if line >= thumbFrom && line < thumbTo {
		return thumbStyle.Render("█")
	}
	return trackStyle.Render("│")
}

func (m uiModel) renderStatusBar() string {
	if d := m.row.Dragged(); d != nil {
		return statusStyle.Render(fmt.Sprintf("moving %q to %s", d.Entry.Title, d.ClippedStart))
	}
	var names []string
	for _, c := range m.store.Calendars() {
		if c.Visible {
			names = append(names, c.Name)
		}
	}
	count := len(m.row.Views())
	return statusStyle.Render(fmt.Sprintf("%d entries  %s", count, strings.Join(names, ", ")))
}
