package widget

import (
	"time"

	"github.com/jpassword/jpassword-go/internal/generator"
)

// DefaultCopiedReset is how long the copied indicator stays on.
const DefaultCopiedReset = time.Second

// Reducer applies events to a State.
type Reducer struct {
	Source      generator.Source
	CopiedReset time.Duration
}

// NewReducer returns a Reducer with the default copied reset delay.
func NewReducer(src generator.Source) Reducer {
	return Reducer{Source: src, CopiedReset: DefaultCopiedReset}
}

// Reduce returns the state after ev together with the effects to run.
// Only Generate consults the random source.
func (r Reducer) Reduce(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case SetLength:
		s.Length = clampLength(e.N)
		return s, nil

	case ToggleClass:
		s.Classes = s.Classes.With(e.Class, e.On)
		return s, nil

	case Generate:
		res := generator.Generate(generator.Request{Length: s.Length, Classes: s.Classes}, r.Source)
		if !res.OK() {
			return s, []Effect{notify(LevelWarning, MsgNoSelection)}
		}
		s.Password = res.Password
		s.Copied = false
		return s, []Effect{notify(LevelSuccess, MsgGenerated)}

	case Copy:
		if !s.HasPassword() {
			return s, nil
		}
		s.Copied = true
		s.CopySeq++
		return s, []Effect{
			WriteClipboard{
				Text:    s.Password,
				Success: Notification{Level: LevelSuccess, Message: MsgCopied},
			},
			ResetCopied{After: r.copiedReset(), Seq: s.CopySeq},
		}

	case ClearCopied:
		if e.Seq == s.CopySeq {
			s.Copied = false
		}
		return s, nil
	}

	return s, nil
}

func (r Reducer) copiedReset() time.Duration {
	if r.CopiedReset <= 0 {
		return DefaultCopiedReset
	}
	return r.CopiedReset
}

func notify(level Level, msg string) Notify {
	return Notify{Notification{Level: level, Message: msg}}
}
