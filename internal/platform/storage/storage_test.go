package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDirStore_SaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}

	loc, err := store.Save(context.Background(), "Relatorio-Maria_Silva.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(loc) != dir {
		t.Errorf("expected artifact under %s, got %s", dir, loc)
	}

	rc, err := store.Open(context.Background(), loc)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestDirStore_CollisionGetsTimestampSuffix(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}
	store.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	}

	first, err := store.Save(context.Background(), "Relatorio-Ana.pdf", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := store.Save(context.Background(), "Relatorio-Ana.pdf", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	if first == second {
		t.Fatal("expected distinct locations for colliding names")
	}
	if filepath.Base(second) != "Relatorio-Ana-20240601T123000.pdf" {
		t.Errorf("unexpected collision name: %s", filepath.Base(second))
	}

	// The first artifact must be untouched.
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read first: %v", err)
	}
	if string(data) != "one" {
		t.Errorf("first artifact was overwritten: %q", data)
	}

	// Third save within the same second gets a counter.
	third, err := store.Save(context.Background(), "Relatorio-Ana.pdf", strings.NewReader("three"))
	if err != nil {
		t.Fatalf("third Save: %v", err)
	}
	if filepath.Base(third) != "Relatorio-Ana-20240601T123000-1.pdf" {
		t.Errorf("unexpected second collision name: %s", filepath.Base(third))
	}
}

func TestDirStore_EmptyNameRejected(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}
	if _, err := store.Save(context.Background(), "", strings.NewReader("x")); err != ErrMissingName {
		t.Errorf("expected ErrMissingName, got %v", err)
	}
}

func TestDirStore_OpenMissing(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}
	if _, err := store.Open(context.Background(), filepath.Join(store.Dir(), "nope.pdf")); err != ErrArtifactNotFound {
		t.Errorf("expected ErrArtifactNotFound, got %v", err)
	}
}

func TestMemStore_RoundTripAndCollision(t *testing.T) {
	store := NewMemStore()

	loc1, err := store.Save(context.Background(), "a.pdf", strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loc2, err := store.Save(context.Background(), "a.pdf", strings.NewReader("two"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if loc1 == loc2 {
		t.Fatal("expected distinct locations for colliding names")
	}

	rc, err := store.Open(context.Background(), loc2)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "two" {
		t.Errorf("unexpected content: %q", data)
	}

	if _, err := store.Open(context.Background(), "missing.pdf"); err != ErrArtifactNotFound {
		t.Errorf("expected ErrArtifactNotFound, got %v", err)
	}
}
