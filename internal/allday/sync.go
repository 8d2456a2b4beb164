package allday

import (
	"sort"

	"github.com/charmbracelet/log"

	"alldayview/internal/calendar"
)

// Reload drops every view and rebuilds the set from the source over
// the current window: entries are deduplicated by ID, filtered to
// full-day entries on visible calendars, and inserted in traversal
// order. The dragged pseudo-view survives a reload.
func (r *Row) Reload(reason string) {
	r.views = r.views[:0]
	r.byID = make(map[string]*EntryView)
	r.bySource = make(map[string]map[string]bool)
	r.markLayoutDirty()

	if r.source == nil {
		return
	}
	start, days := r.Window()
	end := start.AddDays(days - 1)
	log.Debug("reloading all-day entries", "reason", reason, "start", start, "days", days)

	for _, list := range r.source.FindEntries(start, end) {
		for _, e := range list {
			r.addView(e)
		}
	}
}

// syncEntries runs a pending reload so view-derived values are correct
// outside a layout pass.
func (r *Row) syncEntries() {
	if r.needsEntries {
		r.needsEntries = false
		r.Reload(r.reloadReason)
	}
}

// addView creates and registers a view for e. Entries that are not
// full-day, already present, on a hidden calendar, or rejected by the
// factory are skipped.
func (r *Row) addView(e *calendar.Entry) bool {
	if e == nil || !e.FullDay {
		return false
	}
	if _, ok := r.byID[e.ID]; ok {
		return false
	}
	if !r.visible(e.Calendar) {
		return false
	}
	v := r.factory(e)
	if v == nil {
		log.Debug("no view produced for entry", "entry", e.ID)
		return false
	}
	r.insertView(v)
	r.byID[e.ID] = v
	if e.IsOccurrence() {
		src := e.SourceID()
		set := r.bySource[src]
		if set == nil {
			set = make(map[string]bool)
			r.bySource[src] = set
		}
		set[e.ID] = true
	}
	return true
}

// insertView places v so views stay ordered by entry start, then ID.
// The order fixes traversal, not layout.
func (r *Row) insertView(v *EntryView) {
	i := sort.Search(len(r.views), func(i int) bool {
		a, b := r.views[i].Entry, v.Entry
		if !a.Start.Equal(b.Start) {
			return a.Start.After(b.Start)
		}
		return a.ID > b.ID
	})
	r.views = append(r.views, nil)
	copy(r.views[i+1:], r.views[i:])
	r.views[i] = v
}

// removeView drops the view registered under id, if any.
func (r *Row) removeView(id string) bool {
	v, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	if src := v.Entry.SourceID(); src != id {
		if set := r.bySource[src]; set != nil {
			delete(set, id)
			if len(set) == 0 {
				delete(r.bySource, src)
			}
		}
	}
	for i, w := range r.views {
		if w == v {
			r.views = append(r.views[:i], r.views[i+1:]...)
			break
		}
	}
	return true
}

// windowEntries returns the concrete entries e contributes to the
// window: e itself when it does not recur, otherwise its in-window
// occurrences pulled from the source query and filtered by source ID.
func (r *Row) windowEntries(e *calendar.Entry) []*calendar.Entry {
	start, days := r.Window()
	end := start.AddDays(days - 1)

	if !e.Recurring() {
		if !e.EndDate(r.loc).Before(start) && !e.StartDate(r.loc).After(end) {
			return []*calendar.Entry{e}
		}
		return nil
	}
	if r.source == nil {
		return nil
	}

	var out []*calendar.Entry
	seen := make(map[string]bool)
	for _, list := range r.source.FindEntries(start, end) {
		for _, cand := range list {
			if cand.SourceID() != e.SourceID() || seen[cand.ID] {
				continue
			}
			seen[cand.ID] = true
			out = append(out, cand)
		}
	}
	return out
}

func (r *Row) entryAdded(e *calendar.Entry) {
	if e == nil || !e.FullDay {
		return
	}
	changed := false
	for _, occ := range r.windowEntries(e) {
		if r.addView(occ) {
			changed = true
		}
	}
	if changed {
		r.markLayoutDirty()
	}
}

// entryRemoved drops the view for e. An occurrence only takes its own
// view with it; a base recurring entry takes every occurrence view.
func (r *Row) entryRemoved(e *calendar.Entry) {
	if e == nil {
		return
	}
	changed := r.removeView(e.ID)
	if !e.IsOccurrence() {
		ids := make([]string, 0, len(r.bySource[e.ID]))
		for id := range r.bySource[e.ID] {
			ids = append(ids, id)
		}
		for _, id := range ids {
			if r.removeView(id) {
				changed = true
			}
		}
	}
	if changed {
		r.markLayoutDirty()
	}
}

func (r *Row) entryFullDayChanged(e *calendar.Entry) {
	if e == nil {
		return
	}
	if e.FullDay {
		r.entryAdded(e)
		return
	}
	r.entryRemoved(e)
}

// entryIntervalChanged drops the stale view(s) and re-adds whatever
// the entry still contributes to the window.
func (r *Row) entryIntervalChanged(e *calendar.Entry) {
	if e == nil {
		return
	}
	r.entryRemoved(e)
	if e.FullDay {
		r.entryAdded(e)
	}
}

func (r *Row) entryRecurrenceChanged(e *calendar.Entry) {
	r.entryIntervalChanged(e)
}

// SetDragged installs the transient drag view for e, replacing any
// previous one. Returns the new view, or nil when e is nil or the
// factory declines.
func (r *Row) SetDragged(e *calendar.Entry) *EntryView {
	r.dragged = nil
	r.markLayoutDirty()
	if e == nil {
		return nil
	}
	v := r.factory(e)
	if v == nil {
		log.Debug("no view produced for dragged entry", "entry", e.ID)
		return nil
	}
	v.Dragged = true
	r.dragged = v
	return v
}

// ClearDragged removes the drag view.
func (r *Row) ClearDragged() {
	if r.dragged == nil {
		return
	}
	r.dragged = nil
	r.markLayoutDirty()
}

// Dragged returns the active drag view, if any.
func (r *Row) Dragged() *EntryView { return r.dragged }
