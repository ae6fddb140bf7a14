package pagination

import "fmt"

// ErrUnknownBoundary is returned when a requested page lies behind the
// current position but its entry boundary was never recorded.
var ErrUnknownBoundary = fmt.Errorf("pagination: no recorded boundary for the requested page")

// State is the serializable position of a keyset-paginated result set.
// PrevCursors[i] holds the exclusive lower-bound row key for entering page
// i+2; page 1 never needs a boundary. NextCursor is the last row key of the
// most recently loaded page, i.e. the boundary for any forward motion.
type State struct {
	CurrentPage int      `json:"current_page"`
	PageSize    int      `json:"page_size"`
	NextCursor  string   `json:"next_cursor,omitempty"`
	PrevCursors []string `json:"prev_cursors,omitempty"`
}

// Tracker records page boundaries as pages are fetched and answers which
// cursor a target page must be fetched with. It is not safe for concurrent
// use; the orchestrator serializes access.
type Tracker struct {
	state State
}

// NewTracker starts positioned before page 1.
func NewTracker(pageSize int) *Tracker {
	return &Tracker{state: State{PageSize: pageSize}}
}

// State returns a copy of the current position.
func (t *Tracker) State() State {
	s := t.state
	s.PrevCursors = append([]string(nil), t.state.PrevCursors...)
	return s
}

// CurrentPage returns the 1-based page most recently advanced to, 0 before
// the first fetch.
func (t *Tracker) CurrentPage() int {
	return t.state.CurrentPage
}

// PageSize returns the page size the recorded boundaries are valid for.
func (t *Tracker) PageSize() int {
	return t.state.PageSize
}

// Boundary returns the cursor to fetch the target page with. Page 1 fetches
// without a cursor. A page whose entry boundary is on the stack reuses it; a
// jump past the known frontier is forward motion from the last loaded row.
func (t *Tracker) Boundary(targetPage int) (string, error) {
	if targetPage <= 1 {
		return "", nil
	}
	if idx := targetPage - 2; idx < len(t.state.PrevCursors) {
		if key := t.state.PrevCursors[idx]; key != "" {
			return key, nil
		}
		// A gap left by an earlier jump: the page was skipped over and its
		// true boundary was never seen.
		return "", ErrUnknownBoundary
	}
	if t.state.NextCursor == "" {
		return "", ErrUnknownBoundary
	}
	return t.state.NextCursor, nil
}

// Advance records that the given page was fetched and ended at lastKey.
// lastKey becomes the boundary for entering page+1, stored at slot page-1,
// and the forward cursor for any jump beyond the recorded stack. An empty
// lastKey (empty page) keeps the previous forward cursor.
func (t *Tracker) Advance(page int, lastKey string) {
	t.state.CurrentPage = page
	if lastKey == "" {
		return
	}
	slot := page - 1
	for len(t.state.PrevCursors) <= slot {
		t.state.PrevCursors = append(t.state.PrevCursors, "")
	}
	t.state.PrevCursors[slot] = lastKey
	t.state.NextCursor = lastKey
}

// Reset drops every recorded boundary, optionally adopting a new page size.
// Any query-shape change invalidates all boundaries, so callers reset on
// every filter, sort, mode, or search-text edit.
func (t *Tracker) Reset(pageSize int) {
	if pageSize <= 0 {
		pageSize = t.state.PageSize
	}
	t.state = State{PageSize: pageSize}
}
