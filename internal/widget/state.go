// Package widget holds the password generator form state and the
// transitions driven by user actions.
package widget

import (
	"github.com/jpassword/jpassword-go/internal/generator"
)

const (
	MinLength     = 8
	MaxLength     = 30
	DefaultLength = MinLength
)

// State is a snapshot of the form. It is a value: transitions return a new
// State and never modify the old one.
type State struct {
	Length   int
	Classes  generator.ClassSet
	Password string
	Copied   bool
	// CopySeq increments on each copy so a late reset from an earlier copy
	// cannot clear a newer one.
	CopySeq uint64
}

// DefaultState is the form as first shown: length 8, lowercase only, no password.
func DefaultState() State {
	return State{
		Length:  DefaultLength,
		Classes: generator.NewClassSet(generator.Lowercase),
	}
}

// HasPassword reports whether a password is displayed and can be copied.
func (s State) HasPassword() bool {
	return s.Password != ""
}

func clampLength(n int) int {
	if n < MinLength {
		return MinLength
	}
	if n > MaxLength {
		return MaxLength
	}
	return n
}
