package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epslint/internal/lints"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(FlagConfig, "", "")
	flags.String("format", "", "")
	flags.Int("jobs", 0, "")
	flags.Int("max-diagnostics", 0, "")
	flags.Bool(FlagNoCache, false, "")
	flags.StringSlice("exclude", nil, "")
	flags.StringSliceP(FlagAllow, "A", nil, "")
	flags.StringSliceP(FlagWarn, "W", nil, "")
	flags.StringSliceP(FlagDeny, "D", nil, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(LoadOptions{Dir: dir, NoEnv: true})
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, want.Format, cfg.Format)
	assert.Equal(t, want.MaxDiagnostics, cfg.MaxDiagnostics)
	assert.True(t, cfg.Cache)
	assert.Empty(t, cfg.File)
	assert.Equal(t, dir, cfg.Root)
	assert.True(t, cfg.LevelConfig().IsZero())
}

func TestLoad_FileFoundUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
format: short
jobs: 3
exclude: [target]
lints:
  deny: [suspicious]
`)
	nested := filepath.Join(root, "src", "bin")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(LoadOptions{Dir: nested, NoEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "short", cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, []string{"target"}, cfg.Exclude)
	assert.Equal(t, []string{"suspicious"}, cfg.Lints.Deny)
	assert.Equal(t, filepath.Join(root, FileName), cfg.File)
	assert.Equal(t, root, cfg.Root)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: short\njobs: 2\nmax_diagnostics: 10\n")
	t.Setenv("EPSLINT_FORMAT", "json")
	t.Setenv("EPSLINT_JOBS", "4")

	flags := testFlags()
	require.NoError(t, flags.Set("format", "sarif"))

	cfg, err := Load(LoadOptions{Dir: dir, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "sarif", cfg.Format, "flag wins over env and file")
	assert.Equal(t, 4, cfg.Jobs, "env wins over file")
	assert.Equal(t, 10, cfg.MaxDiagnostics, "file wins over defaults")
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "format: short\n")
	cfg, err := Load(LoadOptions{Dir: dir, Flags: testFlags(), NoEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "short", cfg.Format)
}

func TestLoad_EnvLists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EPSLINT_LINTS__DENY", "all, suspicious")
	t.Setenv("EPSLINT_EXCLUDE", "target,vendor")

	cfg, err := Load(LoadOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "suspicious"}, cfg.Lints.Deny)
	assert.Equal(t, []string{"target", "vendor"}, cfg.Exclude)
}

func TestLoad_LevelFlagsAppend(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "lints:\n  warn: [correctness]\n")
	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"-A", "float_equality_without_abs", "-W", "style", "--no-cache"}))

	cfg, err := Load(LoadOptions{Dir: dir, Flags: flags, NoEnv: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"correctness", "style"}, cfg.Lints.Warn)
	assert.Equal(t, []string{"float_equality_without_abs"}, cfg.Lints.Allow)
	assert.False(t, cfg.Cache)
	assert.Empty(t, cfg.CachePath("/fallback"))
}

func TestLoad_ExplicitFile(t *testing.T) {
	other := t.TempDir()
	path := filepath.Join(other, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o600))

	flags := testFlags()
	require.NoError(t, flags.Set(FlagConfig, path))
	cfg, err := Load(LoadOptions{Dir: t.TempDir(), Flags: flags, NoEnv: true})
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, other, cfg.Root)

	_, err = Load(LoadOptions{File: filepath.Join(other, "missing.yaml"), NoEnv: true})
	require.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"format":    "format: html\n",
		"color":     "color: sometimes\n",
		"ui":        "ui: maybe\n",
		"log_level": "log_level: trace\n",
		"jobs":      "jobs: -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, content)
			_, err := Load(LoadOptions{Dir: dir, NoEnv: true})
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestCheck_UnknownLint(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "lints:\n  deny: [float_cmp_typo]\n")
	cfg, err := Load(LoadOptions{Dir: dir, NoEnv: true})
	require.NoError(t, err)

	err = cfg.Check(lints.Registry())
	require.ErrorIs(t, err, ErrUnknownLint)
	assert.Contains(t, err.Error(), FileName)

	cfg.Lints.Deny = []string{"clippy::float_equality_without_abs", "correctness"}
	require.NoError(t, cfg.Check(lints.Registry()))
}

func TestCachePath(t *testing.T) {
	cfg := Default()
	cfg.Root = "/proj"
	assert.Equal(t, "/fallback", cfg.CachePath("/fallback"))
	cfg.CacheDir = ".cache/epslint"
	assert.Equal(t, filepath.Join("/proj", ".cache/epslint"), cfg.CachePath("/fallback"))
	cfg.CacheDir = "/abs"
	assert.Equal(t, "/abs", cfg.CachePath("/fallback"))
}

func TestTemplateLoads(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, string(Template()))
	cfg, err := Load(LoadOptions{Dir: dir, NoEnv: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"target", "*.generated.rs"}, cfg.Exclude)
	require.NoError(t, cfg.Check(lints.Registry()))
}
