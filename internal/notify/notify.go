// Package notify renders widget notifications.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/jpassword/jpassword-go/internal/widget"
)

// Writer prints notifications as one-line toasts.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a Writer notifier printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Notify(note widget.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", Icon(note.Level), note.Message)
}

// Icon returns the marker shown before a notification.
func Icon(level widget.Level) string {
	if level == widget.LevelWarning {
		return "✗"
	}
	return "✓"
}

// Logger records notifications through slog at debug level.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger notifier.
func NewLogger(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func (n *Logger) Notify(note widget.Notification) {
	n.logger.Log(context.Background(), slog.LevelDebug, "notification",
		"kind", note.Level.String(),
		"message", note.Message,
	)
}

// Multi fans a notification out to several notifiers.
type Multi []widget.Notifier

func (m Multi) Notify(note widget.Notification) {
	for _, n := range m {
		n.Notify(note)
	}
}
