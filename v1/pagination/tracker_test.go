package pagination

import (
	"errors"
	"testing"
)

func TestBoundary_PageOneNeedsNoCursor(t *testing.T) {
	tr := NewTracker(50)
	cursor, err := tr.Boundary(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != "" {
		t.Errorf("expected empty cursor for page 1, got %q", cursor)
	}
}

func TestBoundary_ForwardUsesLastRowKey(t *testing.T) {
	tr := NewTracker(50)
	tr.Advance(1, "row-50")

	cursor, err := tr.Boundary(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != "row-50" {
		t.Errorf("expected row-50, got %q", cursor)
	}
}

func TestBoundary_BackwardReusesRecordedBoundary(t *testing.T) {
	tr := NewTracker(50)
	tr.Advance(1, "row-50")
	tr.Advance(2, "row-100")
	tr.Advance(3, "row-150")

	cursor, err := tr.Boundary(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != "row-50" {
		t.Errorf("expected the boundary recorded when page 2 was entered, got %q", cursor)
	}

	cursor, err = tr.Boundary(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != "" {
		t.Errorf("expected empty cursor back on page 1, got %q", cursor)
	}
}

func TestBoundary_RoundTripOneTwoOne(t *testing.T) {
	tr := NewTracker(50)
	tr.Advance(1, "row-50")

	cursor, _ := tr.Boundary(2)
	if cursor != "row-50" {
		t.Fatalf("forward to page 2: got %q", cursor)
	}
	tr.Advance(2, "row-100")

	cursor, _ = tr.Boundary(1)
	if cursor != "" {
		t.Fatalf("back to page 1: got %q", cursor)
	}
	tr.Advance(1, "row-50")

	// Forward again must land on the same page 2.
	cursor, _ = tr.Boundary(2)
	if cursor != "row-50" {
		t.Errorf("second visit to page 2: got %q", cursor)
	}
}

func TestBoundary_JumpPastFrontierIsForwardMotion(t *testing.T) {
	tr := NewTracker(50)
	tr.Advance(1, "row-50")

	// Page 3 was never entered; only page 2's boundary is known, so the
	// jump proceeds from the last loaded row.
	cursor, err := tr.Boundary(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != "row-50" {
		t.Errorf("expected forward motion from row-50, got %q", cursor)
	}
}

func TestBoundary_GapLeftByJumpIsUnknown(t *testing.T) {
	tr := NewTracker(50)
	tr.Advance(1, "row-50")
	tr.Advance(5, "row-100")

	// Pages 2..4 were skipped over; their true boundaries were never seen.
	if _, err := tr.Boundary(4); !errors.Is(err, ErrUnknownBoundary) {
		t.Errorf("expected ErrUnknownBoundary for a skipped page, got %v", err)
	}
}

func TestBoundary_BeforeFirstFetch(t *testing.T) {
	tr := NewTracker(50)
	if _, err := tr.Boundary(3); !errors.Is(err, ErrUnknownBoundary) {
		t.Errorf("expected ErrUnknownBoundary before any fetch, got %v", err)
	}
}

func TestAdvance_EmptyPageKeepsForwardCursor(t *testing.T) {
	tr := NewTracker(50)
	tr.Advance(1, "row-50")
	tr.Advance(2, "")

	cursor, err := tr.Boundary(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != "row-50" {
		t.Errorf("expected the previous forward cursor, got %q", cursor)
	}
	if tr.CurrentPage() != 2 {
		t.Errorf("expected current page 2, got %d", tr.CurrentPage())
	}
}

func TestReset_DropsAllBoundaries(t *testing.T) {
	tr := NewTracker(50)
	tr.Advance(1, "row-50")
	tr.Advance(2, "row-100")

	tr.Reset(25)

	if tr.CurrentPage() != 0 {
		t.Errorf("expected position before page 1, got %d", tr.CurrentPage())
	}
	if tr.PageSize() != 25 {
		t.Errorf("expected new page size, got %d", tr.PageSize())
	}
	if _, err := tr.Boundary(2); !errors.Is(err, ErrUnknownBoundary) {
		t.Errorf("expected boundaries dropped, got %v", err)
	}
}

func TestReset_ZeroSizeKeepsPrevious(t *testing.T) {
	tr := NewTracker(50)
	tr.Reset(0)
	if tr.PageSize() != 50 {
		t.Errorf("expected page size preserved, got %d", tr.PageSize())
	}
}

func TestState_ReturnsDetachedCopy(t *testing.T) {
	tr := NewTracker(50)
	tr.Advance(1, "row-50")

	s := tr.State()
	s.PrevCursors[0] = "mutated"

	cursor, _ := tr.Boundary(2)
	if cursor != "row-50" {
		t.Errorf("tracker state must not alias the returned copy, got %q", cursor)
	}
}
