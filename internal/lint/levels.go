package lint

import (
	"fmt"
	"slices"

	"epslint/internal/source"
)

// LevelConfig lists lint or group names per level, as read from
// configuration and -A/-W/-D flags.
type LevelConfig struct {
	Allow []string
	Warn  []string
	Deny  []string
}

// IsZero reports whether cfg sets nothing.
func (cfg LevelConfig) IsZero() bool {
	return len(cfg.Allow) == 0 && len(cfg.Warn) == 0 && len(cfg.Deny) == 0
}

// Overrides are levels set outside the source, keyed by lint name.
type Overrides map[string]Level

// Overrides resolves cfg against the registry. Group names apply before lint
// names, so a lint listed by name wins over its group. Within each pass the
// lists apply in allow, warn, deny order.
func (r *Registry) Overrides(cfg LevelConfig) (Overrides, error) {
	out := make(Overrides)
	lists := []struct {
		level Level
		names []string
	}{
		{Allow, cfg.Allow},
		{Warn, cfg.Warn},
		{Deny, cfg.Deny},
	}
	for _, groups := range []bool{true, false} {
		for _, list := range lists {
			for _, name := range list.names {
				if r.IsGroup(name) != groups {
					continue
				}
				lints, err := r.Expand(name)
				if err != nil {
					return nil, err
				}
				for _, l := range lints {
					out[l] = list.level
				}
			}
		}
	}
	return out, nil
}

// Source says where an effective level came from.
type Source uint8

const (
	SourceDefault Source = iota
	SourceConfig
	SourceAttr
)

// LevelSpec is the effective level of one lint at one point in a file.
type LevelSpec struct {
	Level  Level
	Source Source
	// Attr and Span describe the attribute argument for SourceAttr.
	Attr string
	Span source.Span
}

// Note is the explanation attached to diagnostics reported at this level.
// The second result is false when the note has no span of its own.
func (s LevelSpec) Note(l *Lint) (string, bool) {
	switch s.Source {
	case SourceAttr:
		return "the lint level is defined here", true
	case SourceConfig:
		return fmt.Sprintf("`%s` set to `%s` by configuration", l.ToolName(), s.Level), false
	default:
		return fmt.Sprintf("`#[%s(%s)]` on by default", s.Level, l.ToolName()), false
	}
}

// scope maps lint names to their level inside one fn or file.
type scope map[string]LevelSpec

func (r *Registry) baseScope(overrides Overrides) scope {
	s := make(scope)
	for _, p := range r.All() {
		l := p.Lint()
		spec := LevelSpec{Level: l.DefaultLevel, Source: SourceDefault}
		if lvl, ok := overrides[l.Name]; ok {
			spec = LevelSpec{Level: lvl, Source: SourceConfig}
		}
		s[l.Name] = spec
	}
	return s
}

// enabled returns the names of lints that are not allowed in s, sorted.
func (s scope) enabled() []string {
	var out []string
	for name, spec := range s {
		if spec.Level != Allow {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
