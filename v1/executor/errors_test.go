package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassify_Nil(t *testing.T) {
	if Classify(nil) != nil {
		t.Error("nil must classify to nil")
	}
}

func TestClassify_AlreadyClassifiedPassesThrough(t *testing.T) {
	wrapped := fmt.Errorf("query page 2: %w", ErrNotInitialized)
	if got := Classify(wrapped); got != wrapped {
		t.Errorf("expected pass-through, got %v", got)
	}
}

func TestClassify_MessagePatterns(t *testing.T) {
	cases := []struct {
		msg  string
		want error
	}{
		{"server replied: 401 Unauthorized", ErrUnauthorized},
		{"invalid api key provided", ErrUnauthorized},
		{"403 Forbidden for namespace docs", ErrForbidden},
		{"permission denied", ErrForbidden},
		{"namespace 'docs' not found", ErrNotFound},
		{"collection does not exist", ErrNotFound},
		{"unable to parse rank_by expression", ErrInvalidQuerySyntax},
		{"malformed filter clause", ErrInvalidQuerySyntax},
		{"request timed out after 30s", ErrTimeout},
		{"context deadline exceeded", ErrTimeout},
	}
	for _, tc := range cases {
		if got := Classify(errors.New(tc.msg)); !errors.Is(got, tc.want) {
			t.Errorf("Classify(%q) = %v, want %v", tc.msg, got, tc.want)
		}
	}
}

func TestClassify_DeadlineExceeded(t *testing.T) {
	if got := Classify(context.DeadlineExceeded); !errors.Is(got, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", got)
	}
}

func TestClassify_UnknownWrapsBackend(t *testing.T) {
	got := Classify(errors.New("tcp reset by peer"))
	if !errors.Is(got, ErrBackend) {
		t.Fatalf("expected ErrBackend, got %v", got)
	}
	if !strings.Contains(got.Error(), "tcp reset by peer") {
		t.Errorf("original message must survive, got %q", got.Error())
	}
}

func TestRowKey(t *testing.T) {
	cases := []struct {
		row  Row
		want string
	}{
		{Row{"id": "doc-1"}, "doc-1"},
		{Row{"id": float64(42)}, "42"},
		{Row{"id": float64(1e7)}, "10000000"},
		{Row{"title": "no key"}, ""},
	}
	for _, tc := range cases {
		if got := tc.row.Key(); got != tc.want {
			t.Errorf("Key(%v) = %q, want %q", tc.row, got, tc.want)
		}
	}
}

func TestResultCount(t *testing.T) {
	r := &Result{Aggregations: map[string]any{"count": float64(137)}}
	n, ok := r.Count("count")
	if !ok || n != 137 {
		t.Errorf("expected 137, got %d ok=%v", n, ok)
	}
	if _, ok := r.Count("missing"); ok {
		t.Error("missing aggregate must not resolve")
	}
	if _, ok := (*Result)(nil).Count("count"); ok {
		t.Error("nil result must not resolve")
	}
}

func TestResultLastKey(t *testing.T) {
	r := &Result{Rows: []Row{{"id": "a"}, {"id": "b"}}}
	if got := r.LastKey(); got != "b" {
		t.Errorf("expected b, got %q", got)
	}
	if got := (&Result{}).LastKey(); got != "" {
		t.Errorf("empty result must have no boundary, got %q", got)
	}
}
