package id

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNew(t *testing.T) {
	first := New()
	if len(first) != 26 {
		t.Fatalf("id length = %d, want 26", len(first))
	}
	if _, err := ulid.Parse(first); err != nil {
		t.Fatalf("generated id does not parse: %v", err)
	}

	seen := make(map[string]bool)
	for range 100 {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
