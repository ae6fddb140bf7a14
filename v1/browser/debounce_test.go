package browser

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	var fired atomic.Int32

	for i := 0; i < 5; i++ {
		d.Do(func() { fired.Add(1) })
	}

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one firing, got %d", got)
	}
}

func TestDebouncer_ZeroDelayFiresSynchronously(t *testing.T) {
	d := newDebouncer(0)
	fired := false
	d.Do(func() { fired = true })
	if !fired {
		t.Error("zero delay must fire inline")
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	var fired atomic.Int32

	d.Do(func() { fired.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("expected no firing after Stop, got %d", got)
	}
}

func TestSetSearchText_Debounced(t *testing.T) {
	store, _, _ := testStore(t)
	store.cfg.SearchDebounce = 20 * time.Millisecond
	store.search = newDebouncer(20 * time.Millisecond)

	var changes atomic.Int32
	store.SetOnChange(func() { changes.Add(1) })

	store.SetSearchText("r")
	store.SetSearchText("re")
	store.SetSearchText("rep")

	time.Sleep(60 * time.Millisecond)

	if got := changes.Load(); got != 1 {
		t.Errorf("expected one committed edit, got %d", got)
	}
	if got := store.Snapshot().Query.SearchText; got != "rep" {
		t.Errorf("expected final text committed, got %q", got)
	}
}
