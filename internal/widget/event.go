package widget

import (
	"time"

	"github.com/jpassword/jpassword-go/internal/generator"
)

// Event is a user action or timer callback fed to Reduce.
type Event interface {
	isEvent()
}

// SetLength moves the length slider. Out-of-range values are clamped.
type SetLength struct {
	N int
}

// ToggleClass checks or unchecks one character class.
type ToggleClass struct {
	Class generator.Class
	On    bool
}

// Generate presses the Generate button.
type Generate struct{}

// Copy presses the copy-to-clipboard icon.
type Copy struct{}

// ClearCopied fires when the copied indicator times out.
type ClearCopied struct {
	Seq uint64
}

func (SetLength) isEvent()   {}
func (ToggleClass) isEvent() {}
func (Generate) isEvent()    {}
func (Copy) isEvent()        {}
func (ClearCopied) isEvent() {}

// Level classifies a notification.
type Level int

const (
	LevelSuccess Level = iota
	LevelWarning
)

func (l Level) String() string {
	if l == LevelWarning {
		return "warning"
	}
	return "success"
}

const (
	MsgGenerated   = "Password generated successfully!"
	MsgNoSelection = "You must select at least one option!"
	MsgCopied      = "Password copied!"
	MsgCopyFailed  = "Could not copy password to clipboard."
)

// Notification is a short fire-and-forget message for the user.
type Notification struct {
	Level   Level
	Message string
}

// Effect is work a transition asks the caller to perform.
type Effect interface {
	isEffect()
}

// Notify asks for a notification to be shown.
type Notify struct {
	Notification
}

// WriteClipboard asks for Text to be placed on the clipboard and for
// Success to be shown once it is.
type WriteClipboard struct {
	Text    string
	Success Notification
}

// ResetCopied asks for ClearCopied{Seq} to be delivered after the delay.
type ResetCopied struct {
	After time.Duration
	Seq   uint64
}

func (Notify) isEffect()         {}
func (WriteClipboard) isEffect() {}
func (ResetCopied) isEffect()    {}
