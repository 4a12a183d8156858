package lint

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"epslint/internal/diag"
)

//go:embed lints.toml
var builtinCatalog string

// Group is a named set of lints sharing a default level.
type Group struct {
	Name        string `toml:"name"`
	Level       Level  `toml:"level"`
	Description string `toml:"description"`
}

// Lint is the documentation and defaults of one lint.
type Lint struct {
	Name          string
	Group         string
	DefaultLevel  Level
	Code          diag.Code
	Since         string
	Applicability diag.Applicability
	Description   string
	WhatItDoes    string
	WhyBad        string
	KnownProblems string
	Example       string
	UseInstead    string
}

// ToolName is the name used in attributes, e.g. clippy::float_equality_without_abs.
func (l *Lint) ToolName() string {
	return "clippy::" + l.Name
}

// Catalog is the parsed lint documentation.
type Catalog struct {
	Groups []Group
	Lints  []*Lint
}

type catalogFile struct {
	Group []Group      `toml:"group"`
	Lint  []lintRecord `toml:"lint"`
}

type lintRecord struct {
	Name          string             `toml:"name"`
	Group         string             `toml:"group"`
	Level         string             `toml:"level"`
	Code          diag.Code          `toml:"code"`
	Since         string             `toml:"since"`
	Applicability diag.Applicability `toml:"applicability"`
	Description   string             `toml:"description"`
	WhatItDoes    string             `toml:"what_it_does"`
	WhyBad        string             `toml:"why_bad"`
	KnownProblems string             `toml:"known_problems"`
	Example       string             `toml:"example"`
	UseInstead    string             `toml:"use_instead"`
}

// ParseCatalog decodes a catalog in the lints.toml format. A lint without an
// explicit level inherits the level of its group.
func ParseCatalog(data string) (*Catalog, error) {
	var file catalogFile
	meta, err := toml.Decode(data, &file)
	if err != nil {
		return nil, fmt.Errorf("lint catalog: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("lint catalog: unknown key %q", undecoded[0].String())
	}

	cat := &Catalog{Groups: file.Group}
	groups := make(map[string]Group, len(file.Group))
	for _, g := range file.Group {
		if g.Name == "" {
			return nil, fmt.Errorf("lint catalog: group without a name")
		}
		groups[g.Name] = g
	}

	seen := make(map[string]bool, len(file.Lint))
	for _, rec := range file.Lint {
		switch {
		case rec.Name == "":
			return nil, fmt.Errorf("lint catalog: lint without a name")
		case seen[rec.Name]:
			return nil, fmt.Errorf("lint catalog: duplicate lint %q", rec.Name)
		case rec.Code == 0:
			return nil, fmt.Errorf("lint catalog: %s: missing code", rec.Name)
		}
		seen[rec.Name] = true

		g, ok := groups[rec.Group]
		if !ok {
			return nil, fmt.Errorf("lint catalog: %s: unknown group %q", rec.Name, rec.Group)
		}
		level := g.Level
		if rec.Level != "" {
			if level, err = ParseLevel(rec.Level); err != nil {
				return nil, fmt.Errorf("lint catalog: %s: %w", rec.Name, err)
			}
		}
		cat.Lints = append(cat.Lints, &Lint{
			Name:          rec.Name,
			Group:         rec.Group,
			DefaultLevel:  level,
			Code:          rec.Code,
			Since:         rec.Since,
			Applicability: rec.Applicability,
			Description:   rec.Description,
			WhatItDoes:    strings.TrimSpace(rec.WhatItDoes),
			WhyBad:        strings.TrimSpace(rec.WhyBad),
			KnownProblems: strings.TrimSpace(rec.KnownProblems),
			Example:       strings.TrimSpace(rec.Example),
			UseInstead:    strings.TrimSpace(rec.UseInstead),
		})
	}
	slices.SortFunc(cat.Lints, func(a, b *Lint) int { return strings.Compare(a.Name, b.Name) })
	return cat, nil
}

// Describe returns the catalog entry for name.
func (c *Catalog) Describe(name string) (*Lint, bool) {
	for _, l := range c.Lints {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// Group returns the group called name.
func (c *Catalog) Group(name string) (Group, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(builtinCatalog)
})

// Builtin returns the catalog embedded in the binary.
func Builtin() *Catalog {
	cat, err := builtin()
	if err != nil {
		panic(err)
	}
	return cat
}

// MustDescribe returns the builtin entry for name and panics when it is missing.
// Lint packages call it once to bind their metadata.
func MustDescribe(name string) *Lint {
	l, ok := Builtin().Describe(name)
	if !ok {
		panic(fmt.Sprintf("lint %q is not in the catalog", name))
	}
	return l
}
