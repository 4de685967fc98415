package clipboard

import (
	"errors"
	"testing"
)

func TestMemory(t *testing.T) {
	var m Memory
	if got := m.ReadAll(); got != "" {
		t.Fatalf("new Memory holds %q", got)
	}

	if err := m.WriteAll("aB3$xyz!"); err != nil {
		t.Fatalf("WriteAll() unexpected error: %v", err)
	}
	if err := m.WriteAll("second"); err != nil {
		t.Fatalf("WriteAll() unexpected error: %v", err)
	}
	if got := m.ReadAll(); got != "second" {
		t.Errorf("ReadAll() = %q, want %q", got, "second")
	}
}

func TestSystemUnsupported(t *testing.T) {
	s := NewSystem()
	if s.Available() {
		t.Skip("system clipboard present")
	}
	if err := s.WriteAll("x"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("WriteAll() error = %v, want ErrUnsupported", err)
	}
}
