package request

import (
	"strings"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New("login error", "alice", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "login error" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Owner() != "alice" || !r.Scoped() {
		t.Errorf("Owner() = %q, Scoped() = %v", r.Owner(), r.Scoped())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultLimit)
	}
}

func TestNew_Unscoped(t *testing.T) {
	r, err := New("q", "", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Scoped() {
		t.Error("empty owner must be unscoped")
	}
	if r.Limit() != 20 {
		t.Errorf("Limit() = %d", r.Limit())
	}
}

func TestNew_ClampsLimit(t *testing.T) {
	r, err := New("q", "alice", MaxLimit+50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), MaxLimit)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"too long", strings.Repeat("a", MaxQueryLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.query, "alice", 5); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
