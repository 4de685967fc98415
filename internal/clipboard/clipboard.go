// Package clipboard provides clipboard sinks for the widget.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("clipboard is not supported on this system")

// System writes to the operating system clipboard.
type System struct{}

// NewSystem returns the OS clipboard sink.
func NewSystem() System {
	return System{}
}

// Available reports whether an OS clipboard utility was found.
func (System) Available() bool {
	return !clipboard.Unsupported
}

func (s System) WriteAll(text string) error {
	if !s.Available() {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Memory keeps the last written text. Used when no OS clipboard exists
// and in tests.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// ReadAll returns the last written text.
func (m *Memory) ReadAll() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
