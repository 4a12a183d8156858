package lint

import (
	"errors"
	"fmt"
	"strings"

	"epslint/internal/diag"
)

// ErrUnknownLevel is returned by ParseLevel for anything but allow, warn or deny.
var ErrUnknownLevel = errors.New("unknown lint level")

// Level is how loudly a lint reports.
type Level uint8

const (
	Allow Level = iota
	Warn
	Deny
)

func (l Level) String() string {
	switch l {
	case Warn:
		return "warn"
	case Deny:
		return "deny"
	default:
		return "allow"
	}
}

// ParseLevel accepts allow, warn and deny in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "warn", "warning":
		return Warn, nil
	case "deny", "error":
		return Deny, nil
	}
	return Allow, fmt.Errorf("%w %q (want allow, warn or deny)", ErrUnknownLevel, s)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Severity maps a level to the severity of the diagnostics it produces.
// Allow has no severity; callers never report at that level.
func (l Level) Severity() diag.Severity {
	if l == Deny {
		return diag.SevError
	}
	return diag.SevWarning
}
