package ast

import (
	"strings"

	"epslint/internal/source"
)

// Attr is #[name] / #[name(args)] or the inner form #![...].
// Only path arguments are kept; other argument shapes leave Args empty and set Opaque.
type Attr struct {
	Name   string
	Args   []AttrArg
	Inner  bool
	Opaque bool
	Span   source.Span
}

// AttrArg is one path argument, such as clippy::float_equality_without_abs.
type AttrArg struct {
	Path string
	Span source.Span
}

// IsLintLevel reports whether the attribute is allow, warn or deny.
func (a Attr) IsLintLevel() bool {
	switch a.Name {
	case "allow", "warn", "deny":
		return true
	}
	return false
}

// LintName strips a tool prefix (clippy:: or epslint::) from a lint path.
// The second result is false for paths owned by another tool.
func (a AttrArg) LintName() (string, bool) {
	p := a.Path
	for _, prefix := range []string{"clippy::", "epslint::"} {
		if rest, ok := strings.CutPrefix(p, prefix); ok {
			return rest, true
		}
	}
	if strings.Contains(p, "::") {
		return "", false
	}
	return p, true
}
