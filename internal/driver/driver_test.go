package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epslint/internal/diag"
	"epslint/internal/fix"
	"epslint/internal/lint"
)

const eqSource = "fn eq(a: f32, b: f32) -> bool {\n    (a - b) < f32::EPSILON\n}\n"

const cleanSource = "fn eq(a: f32, b: f32) -> bool {\n    (a - b).abs() < f32::EPSILON\n}\n"

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func TestLintSourceDefaultLevel(t *testing.T) {
	res, err := LintSource(context.Background(), "eq.rs", []byte(eqSource), Options{})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	items := res.Files[0].Bag.Items()
	require.Len(t, items, 1)
	d := items[0]
	assert.Equal(t, diag.SevError, d.Severity)
	assert.Equal(t, diag.LntFloatEqualityWithoutAbs, d.Code)
	assert.Equal(t, "float_equality_without_abs", d.Lint)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "`#[deny(clippy::float_equality_without_abs)]` on by default", d.Notes[0].Msg)
	require.Len(t, d.Fixes, 1)
	assert.Equal(t, "(a - b).abs()", d.Fixes[0].Edits[0].NewText)
	assert.True(t, res.Bag().HasErrors())
}

func TestLintSourceLeadingParenSuggestion(t *testing.T) {
	src := "fn f(a: f32, b: f32) -> bool {\n    (a) - b < f32::EPSILON\n}\n"
	res, err := LintSource(context.Background(), "paren.rs", []byte(src), Options{})
	require.NoError(t, err)

	buffers, _, err := fix.Render(res.FileSet, res.Bag().Pointers(), fix.ApplyOptions{
		Mode:                  fix.ApplyModeAll,
		IncludeMaybeIncorrect: true,
	})
	require.NoError(t, err)
	require.Len(t, buffers, 1)
	for _, out := range buffers {
		assert.Equal(t, "fn f(a: f32, b: f32) -> bool {\n    (a) - b.abs() < f32::EPSILON\n}\n", string(out))
	}
}

func TestLintSourceLevelOverrides(t *testing.T) {
	res, err := LintSource(context.Background(), "eq.rs", []byte(eqSource), Options{
		Levels: lint.LevelConfig{Warn: []string{"correctness"}},
	})
	require.NoError(t, err)
	items := res.Bag().Items()
	require.Len(t, items, 1)
	assert.Equal(t, diag.SevWarning, items[0].Severity)

	res, err = LintSource(context.Background(), "eq.rs", []byte(eqSource), Options{
		Levels: lint.LevelConfig{Allow: []string{"clippy::float_equality_without_abs"}},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Bag().Len())

	_, err = LintSource(context.Background(), "eq.rs", []byte(eqSource), Options{
		Levels: lint.LevelConfig{Deny: []string{"no_such_lint"}},
	})
	require.ErrorIs(t, err, lint.ErrUnknownLint)
}

func TestLintSourceReportsSyntaxErrors(t *testing.T) {
	res, err := LintSource(context.Background(), "bad.rs", []byte("fn f() {\n    let x = 1\n}\n"), Options{})
	require.NoError(t, err)
	items := res.Bag().Items()
	require.NotEmpty(t, items)
	assert.Equal(t, diag.SynExpectSemicolon, items[0].Code)
}

func TestLintDirSortedAndExcluded(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.rs":          eqSource,
		"a.rs":          cleanSource,
		"sub/c.rs":      eqSource,
		"target/gen.rs": eqSource,
		"notes.txt":     eqSource,
	})

	res, err := LintDir(context.Background(), dir, Options{Jobs: 2, Exclude: []string{"target"}})
	require.NoError(t, err)

	var rel []string
	for _, f := range res.Files {
		r, err := filepath.Rel(dir, f.Path)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"a.rs", "b.rs", "sub/c.rs"}, rel)
	assert.Zero(t, res.Files[0].Bag.Len())
	assert.Equal(t, 1, res.Files[1].Bag.Len())
	assert.Equal(t, 1, res.Files[2].Bag.Len())
	assert.Equal(t, 2, res.Bag().Len())
	assert.Empty(t, res.Errs())

	short := diag.FormatShortDiagnostics(res.Bag().Pointers(), res.FileSet, false)
	assert.Contains(t, short, "error LNT3001 b.rs:2:5")
	assert.Contains(t, short, "error LNT3001 sub/c.rs:2:5")
}

func TestLintPathsExplicitFileAndMissing(t *testing.T) {
	dir := writeTree(t, map[string]string{"x.txt": eqSource})
	missing := filepath.Join(dir, "missing.rs")

	res, err := LintFile(context.Background(), filepath.Join(dir, "x.txt"), Options{})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)
	assert.Equal(t, 1, res.Files[0].Bag.Len(), "explicit files are linted whatever their extension")

	_, err = LintFile(context.Background(), missing, Options{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLintDirCache(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.rs": eqSource})
	cache, err := OpenCache(t.TempDir())
	require.NoError(t, err)
	opts := Options{Cache: cache}

	first, err := LintDir(context.Background(), dir, opts)
	require.NoError(t, err)
	require.False(t, first.Files[0].Cached)

	second, err := LintDir(context.Background(), dir, opts)
	require.NoError(t, err)
	require.True(t, second.Files[0].Cached)
	assert.Equal(t,
		diag.FormatGoldenDiagnostics(first.Bag().Pointers(), first.FileSet, true),
		diag.FormatGoldenDiagnostics(second.Bag().Pointers(), second.FileSet, true))

	// a different level configuration must not reuse the entry
	third, err := LintDir(context.Background(), dir, Options{Cache: cache, Levels: lint.LevelConfig{Warn: []string{"all"}}})
	require.NoError(t, err)
	assert.False(t, third.Files[0].Cached)
	assert.Equal(t, diag.SevWarning, third.Bag().Items()[0].Severity)
}

func TestLintDirProgressEvents(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.rs": eqSource, "b.rs": cleanSource})

	var mu sync.Mutex
	seen := map[string][]Status{}
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		name := filepath.Base(ev.File)
		seen[name] = append(seen[name], ev.Status)
	})

	_, err := LintDir(context.Background(), dir, Options{Progress: sink, Jobs: 1})
	require.NoError(t, err)
	want := []Status{StatusQueued, StatusWorking, StatusDone}
	assert.Equal(t, want, seen["a.rs"])
	assert.Equal(t, want, seen["b.rs"])
}

func TestLintDirCancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.rs": eqSource, "b.rs": eqSource})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := LintDir(ctx, dir, Options{})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	for _, f := range res.Files {
		assert.Nil(t, f.Bag)
	}
}

func TestTokenizeAndParse(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.rs": eqSource})
	path := filepath.Join(dir, "a.rs")

	tr, err := Tokenize(path, 0)
	require.NoError(t, err)
	assert.Zero(t, tr.Bag.Len())
	assert.Equal(t, "fn", tr.Tokens[0].Text)

	pr, err := Parse(path, 0)
	require.NoError(t, err)
	assert.Zero(t, pr.Bag.Len())
	f := pr.Builder.Files.Get(pr.FileID)
	require.NotNil(t, f)
	assert.Len(t, f.Items, 1)
}
