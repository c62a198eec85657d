package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDeriveOutputPath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "papers")
	now := time.Date(2024, 5, 3, 14, 30, 0, 0, time.UTC)

	path, err := DeriveOutputPath(root, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(root, "2024-05-03.pdf") {
		t.Fatalf("path = %q", path)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		t.Fatalf("expected directory to be created: %v", err)
	}
}

func TestDeriveOutputPath_StablePerDay(t *testing.T) {
	root := t.TempDir()
	morning := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 5, 3, 20, 0, 0, 0, time.UTC)

	p1, err := DeriveOutputPath(root, morning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := DeriveOutputPath(root, evening)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("expected stable path, got %q and %q", p1, p2)
	}
}
