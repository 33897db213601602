package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSortedStringKeys(t *testing.T) {
	t.Parallel()

	m := map[string]int{"b": 1, "a": 2, "c": 3}
	got := SortedStringKeys(m)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestWriteStringWithDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out", "diagram.md")
	if err := WriteStringWithDirs(target, "classDiagram\n", 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "classDiagram\n" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestLimiterAllow(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(1, 2)
	if !limiter.Allow(1) {
		t.Fatal("first event should pass")
	}
	if !limiter.Allow(1) {
		t.Fatal("burst should allow a second event")
	}
	if limiter.Allow(1) {
		t.Fatal("third immediate event should be limited")
	}
}
