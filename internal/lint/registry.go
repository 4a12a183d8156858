package lint

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownLint is returned when a name matches neither a lint nor a group.
var ErrUnknownLint = errors.New("unknown lint")

// AllGroup selects every registered lint.
const AllGroup = "all"

// Registry holds the passes available to a Runner.
type Registry struct {
	mu      sync.RWMutex
	catalog *Catalog
	passes  map[string]ExprPass
}

// NewRegistry creates an empty registry documented by catalog; nil means Builtin().
func NewRegistry(catalog *Catalog) *Registry {
	if catalog == nil {
		catalog = Builtin()
	}
	return &Registry{
		catalog: catalog,
		passes:  make(map[string]ExprPass),
	}
}

// Catalog returns the documentation backing the registry.
func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// Register adds pass. Its lint must be unique by name and code.
func (r *Registry) Register(pass ExprPass) error {
	l := pass.Lint()
	if l == nil || l.Name == "" {
		return fmt.Errorf("register lint: pass has no metadata")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.passes[l.Name]; dup {
		return fmt.Errorf("register lint %s: already registered", l.Name)
	}
	for _, other := range r.passes {
		if other.Lint().Code == l.Code {
			return fmt.Errorf("register lint %s: code %s already used by %s", l.Name, l.Code.ID(), other.Lint().Name)
		}
	}
	r.passes[l.Name] = pass
	return nil
}

// Lookup returns the pass registered under name. A clippy:: or epslint::
// prefix is accepted.
func (r *Registry) Lookup(name string) (ExprPass, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.passes[trimTool(name)]
	return p, ok
}

// Group returns the passes of group, sorted by name.
func (r *Registry) Group(name string) []ExprPass {
	name = trimTool(name)
	var out []ExprPass
	for _, p := range r.All() {
		if name == AllGroup || p.Lint().Group == name {
			out = append(out, p)
		}
	}
	return out
}

// All returns every registered pass sorted by lint name.
func (r *Registry) All() []ExprPass {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ExprPass, 0, len(r.passes))
	for _, p := range r.passes {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b ExprPass) int {
		return strings.Compare(a.Lint().Name, b.Lint().Name)
	})
	return out
}

// Expand resolves a lint name, a group name or "all" to lint names.
// Group names are known from the catalog even when no pass of the group is
// registered, in which case the result is empty.
func (r *Registry) Expand(name string) ([]string, error) {
	bare := trimTool(name)
	if p, ok := r.Lookup(bare); ok {
		return []string{p.Lint().Name}, nil
	}
	if _, isGroup := r.catalog.Group(bare); !isGroup && bare != AllGroup {
		return nil, fmt.Errorf("%w %q", ErrUnknownLint, name)
	}
	var names []string
	for _, p := range r.Group(bare) {
		names = append(names, p.Lint().Name)
	}
	return names, nil
}

// IsGroup reports whether name (without tool prefix) is a group or "all".
func (r *Registry) IsGroup(name string) bool {
	name = trimTool(name)
	if name == AllGroup {
		return true
	}
	_, ok := r.catalog.Group(name)
	return ok
}

func trimTool(name string) string {
	for _, prefix := range []string{"clippy::", "epslint::"} {
		if rest, ok := strings.CutPrefix(name, prefix); ok {
			return rest
		}
	}
	return name
}
