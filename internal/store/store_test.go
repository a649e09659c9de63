package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferenceCRUD(t *testing.T) {
	s := newTestStore(t)

	// Missing key returns empty string.
	v, err := s.GetPreference("theme")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty value, got %q", v)
	}

	// Set value.
	if err := s.SetPreference("theme", "dark"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	v, err = s.GetPreference("theme")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if v != "dark" {
		t.Errorf("expected 'dark', got %q", v)
	}

	// Update existing.
	if err := s.SetPreference("theme", "light"); err != nil {
		t.Fatalf("SetPreference update: %v", err)
	}
	v, _ = s.GetPreference("theme")
	if v != "light" {
		t.Errorf("expected 'light', got %q", v)
	}

	// Other keys are independent.
	if err := s.SetPreference("other", "x"); err != nil {
		t.Fatalf("SetPreference other: %v", err)
	}
	v, _ = s.GetPreference("theme")
	if v != "light" {
		t.Errorf("expected 'light' after unrelated write, got %q", v)
	}

	// Delete.
	if err := s.DeletePreference("theme"); err != nil {
		t.Fatalf("DeletePreference: %v", err)
	}
	v, _ = s.GetPreference("theme")
	if v != "" {
		t.Errorf("expected empty value after delete, got %q", v)
	}
	if err := s.DeletePreference("theme"); err != nil {
		t.Errorf("deleting a missing key should not fail: %v", err)
	}
}

func TestPreferencePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qgen.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SetPreference("theme", "dark"); err != nil {
		t.Fatalf("SetPreference: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, err := s.GetPreference("theme")
	if err != nil {
		t.Fatalf("GetPreference: %v", err)
	}
	if v != "dark" {
		t.Errorf("expected 'dark' after reopen, got %q", v)
	}
}
