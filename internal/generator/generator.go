// Package generator produces random passwords from a selection of character classes.
package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Class is one of the character categories a password can draw from.
type Class int

const (
	Lowercase Class = iota
	Uppercase
	Symbols
	Digits
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	symbolChars    = "!@#$^&()_"
	digitChars     = "0123456789"
)

// AllClasses lists every class in canonical alphabet order.
var AllClasses = []Class{Lowercase, Uppercase, Symbols, Digits}

var ErrUnknownClass = errors.New("unknown character class")

// Alphabet returns the fixed set of characters the class contributes.
func (c Class) Alphabet() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Symbols:
		return symbolChars
	case Digits:
		return digitChars
	}
	return ""
}

// Label is the human-readable name shown next to the class toggle.
func (c Class) Label() string {
	switch c {
	case Lowercase:
		return "Lowercase Letters"
	case Uppercase:
		return "Uppercase Letters"
	case Symbols:
		return "Special Symbols"
	case Digits:
		return "Numbers"
	}
	return "Unknown"
}

// String returns the short identifier used in flags, forms and JSON.
func (c Class) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Symbols:
		return "symbols"
	case Digits:
		return "numbers"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// ParseClass accepts the short identifiers plus a few common aliases.
func ParseClass(s string) (Class, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowercase", "lower", "l":
		return Lowercase, nil
	case "uppercase", "upper", "u":
		return Uppercase, nil
	case "symbols", "symbol", "special", "s":
		return Symbols, nil
	case "numbers", "number", "digits", "digit", "n", "d":
		return Digits, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// ClassSet is an immutable set of enabled classes.
type ClassSet uint8

// NewClassSet returns a set containing the given classes.
func NewClassSet(classes ...Class) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c, true)
	}
	return s
}

// With returns a copy of s with c enabled or disabled.
func (s ClassSet) With(c Class, on bool) ClassSet {
	if c < Lowercase || c > Digits {
		return s
	}
	if on {
		return s | 1<<c
	}
	return s &^ (1 << c)
}

func (s ClassSet) Has(c Class) bool {
	return c >= Lowercase && c <= Digits && s&(1<<c) != 0
}

func (s ClassSet) Empty() bool {
	return s == 0
}

// Classes returns the enabled classes in canonical order.
func (s ClassSet) Classes() []Class {
	var out []Class
	for _, c := range AllClasses {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Alphabet concatenates the alphabets of every enabled class.
func (s ClassSet) Alphabet() string {
	var sb strings.Builder
	for _, c := range s.Classes() {
		sb.WriteString(c.Alphabet())
	}
	return sb.String()
}

func (s ClassSet) String() string {
	names := make([]string, 0, len(AllClasses))
	for _, c := range s.Classes() {
		names = append(names, c.String())
	}
	return "[" + strings.Join(names, ",") + "]"
}

// Request describes a single generation.
type Request struct {
	Length  int
	Classes ClassSet
}

// Result is the outcome of Generate. Empty is set when no class was selected,
// in which case Password is always "".
type Result struct {
	Password string
	Empty    bool
}

// OK reports whether a password was produced.
func (r Result) OK() bool {
	return !r.Empty
}

// Generate draws req.Length characters independently and uniformly from the
// merged alphabet of the selected classes. Larger classes are proportionally
// more likely to appear. A non-positive length yields an empty password.
func Generate(req Request, src Source) Result {
	alphabet := req.Classes.Alphabet()
	if alphabet == "" {
		return Result{Empty: true}
	}

	if req.Length <= 0 {
		return Result{}
	}

	var sb strings.Builder
	sb.Grow(req.Length)
	for i := 0; i < req.Length; i++ {
		sb.WriteByte(alphabet[src.IntN(len(alphabet))])
	}

	return Result{Password: sb.String()}
}
