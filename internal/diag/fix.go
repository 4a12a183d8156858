package diag

import (
	"fmt"
	"strings"

	"epslint/internal/source"
)

// Applicability states how confident a producer is that a fix is correct.
type Applicability uint8

const (
	// Unspecified means the producer did not say.
	Unspecified Applicability = iota
	// MachineApplicable fixes are definitely what the user intended.
	MachineApplicable
	// MaybeIncorrect fixes may change meaning or fail to compile.
	MaybeIncorrect
	// HasPlaceholders fixes contain text the user must fill in.
	HasPlaceholders
)

func (a Applicability) String() string {
	switch a {
	case MachineApplicable:
		return "MachineApplicable"
	case MaybeIncorrect:
		return "MaybeIncorrect"
	case HasPlaceholders:
		return "HasPlaceholders"
	default:
		return "Unspecified"
	}
}

// ParseApplicability accepts the String form, case-insensitively.
func ParseApplicability(s string) (Applicability, error) {
	for _, a := range []Applicability{Unspecified, MachineApplicable, MaybeIncorrect, HasPlaceholders} {
		if strings.EqualFold(s, a.String()) {
			return a, nil
		}
	}
	return Unspecified, fmt.Errorf("unknown applicability %q", s)
}

func (a Applicability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Applicability) UnmarshalText(text []byte) error {
	v, err := ParseApplicability(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// FixKind is a coarse classification used by editors.
type FixKind uint8

const (
	FixKindQuickFix FixKind = iota
	FixKindRewrite
)

func (k FixKind) String() string {
	if k == FixKindRewrite {
		return "rewrite"
	}
	return "quickfix"
}

// TextEdit replaces Span with NewText. A non-empty OldText must match the
// current source text or the edit is rejected.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

type Fix struct {
	// ID is stable across runs for the same source and is assigned by the fix
	// engine when empty.
	ID            string
	Title         string
	Kind          FixKind
	Applicability Applicability
	IsPreferred   bool
	Edits         []TextEdit
}

// AutoApplicable reports whether bulk fix modes may apply f without an explicit opt-in.
func (f *Fix) AutoApplicable(includeMaybeIncorrect bool) bool {
	if f == nil {
		return false
	}
	switch f.Applicability {
	case MachineApplicable:
		return true
	case MaybeIncorrect:
		return includeMaybeIncorrect
	default:
		return false
	}
}
