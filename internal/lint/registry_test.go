package lint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epslint/internal/ast"
	"epslint/internal/diag"
)

type stubPass struct{ meta *Lint }

func (p stubPass) Lint() *Lint                    { return p.meta }
func (p stubPass) CheckExpr(*Context, ast.ExprID) {}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	cat, err := ParseCatalog(`
[[group]]
name = "correctness"
level = "deny"
[[group]]
name = "style"
level = "warn"
[[group]]
name = "pedantic"
level = "allow"

[[lint]]
name = "one"
group = "correctness"
code = 3101
[[lint]]
name = "two"
group = "style"
code = 3102
[[lint]]
name = "three"
group = "style"
code = 3103
`)
	require.NoError(t, err)
	reg := NewRegistry(cat)
	for _, l := range cat.Lints {
		require.NoError(t, reg.Register(stubPass{meta: l}))
	}
	return reg
}

func names(passes []ExprPass) []string {
	out := make([]string, len(passes))
	for i, p := range passes {
		out[i] = p.Lint().Name
	}
	return out
}

func TestRegistryLookup(t *testing.T) {
	reg := testRegistry(t)

	assert.Equal(t, []string{"one", "three", "two"}, names(reg.All()))
	assert.Equal(t, []string{"three", "two"}, names(reg.Group("style")))
	assert.Equal(t, []string{"three", "two"}, names(reg.Group("clippy::style")))
	assert.Empty(t, reg.Group("pedantic"))

	_, ok := reg.Lookup("clippy::one")
	assert.True(t, ok)
	_, ok = reg.Lookup("epslint::two")
	assert.True(t, ok)
	_, ok = reg.Lookup("four")
	assert.False(t, ok)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := testRegistry(t)
	one, _ := reg.Lookup("one")

	err := reg.Register(one)
	assert.ErrorContains(t, err, "already registered")

	err = reg.Register(stubPass{meta: &Lint{Name: "other", Code: one.Lint().Code}})
	assert.ErrorContains(t, err, "code LNT3101 already used by one")

	err = reg.Register(stubPass{})
	assert.Error(t, err)
}

func TestRegistryExpand(t *testing.T) {
	reg := testRegistry(t)

	got, err := reg.Expand("two")
	require.NoError(t, err)
	assert.Equal(t, []string{"two"}, got)

	got, err = reg.Expand("all")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "three", "two"}, got)

	got, err = reg.Expand("pedantic")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = reg.Expand("nope")
	assert.True(t, errors.Is(err, ErrUnknownLint))
}

func TestOverrides(t *testing.T) {
	reg := testRegistry(t)

	ov, err := reg.Overrides(LevelConfig{
		Allow: []string{"three"},
		Deny:  []string{"style"},
		Warn:  []string{"all"},
	})
	require.NoError(t, err)
	// groups first (warn all, then deny style), then the lint named explicitly
	assert.Equal(t, Overrides{"one": Warn, "two": Deny, "three": Allow}, ov)

	_, err = reg.Overrides(LevelConfig{Deny: []string{"missing"}})
	assert.True(t, errors.Is(err, ErrUnknownLint))
}

func TestLevelSpecNote(t *testing.T) {
	l := &Lint{Name: "one"}

	msg, spanned := LevelSpec{Level: Deny}.Note(l)
	assert.False(t, spanned)
	assert.Equal(t, "`#[deny(clippy::one)]` on by default", msg)

	msg, spanned = LevelSpec{Level: Warn, Source: SourceConfig}.Note(l)
	assert.False(t, spanned)
	assert.Equal(t, "`clippy::one` set to `warn` by configuration", msg)

	_, spanned = LevelSpec{Level: Warn, Source: SourceAttr}.Note(l)
	assert.True(t, spanned)

	assert.Equal(t, diag.SevWarning, Warn.Severity())
}
