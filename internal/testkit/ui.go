// Package testkit holds fixture harnesses shared by lint tests.
package testkit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"epslint/internal/diag"
	"epslint/internal/driver"
	"epslint/internal/fix"
)

// UpdateEnv rewrites fixture expectations instead of comparing when set to 1.
const UpdateEnv = "EPSLINT_UPDATE_FIXTURES"

// RunUI lints every <name>.rs in dir and compares:
//   - <name>.stderr with the golden rendering, notes and help lines included;
//   - <name>.fixed with the source after applying every suggestion, including
//     MaybeIncorrect ones. A missing .fixed means the file must have no fixes.
func RunUI(t *testing.T, dir string, opts driver.Options) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	update := os.Getenv(UpdateEnv) == "1"

	ran := 0
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".rs") {
			continue
		}
		ran++
		name := strings.TrimSuffix(ent.Name(), ".rs")
		t.Run(name, func(t *testing.T) {
			runOne(t, filepath.Join(dir, ent.Name()), opts, update)
		})
	}
	if ran == 0 {
		t.Fatalf("no .rs fixtures in %s", dir)
	}
}

func runOne(t *testing.T, path string, opts driver.Options, update bool) {
	t.Helper()
	res, err := driver.LintFile(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("lint %s: %v", path, err)
	}
	if errs := res.Errs(); len(errs) > 0 {
		t.Fatalf("load %s: %v", path, errs[0])
	}
	diags := res.Bag().Pointers()

	gotStderr := diag.FormatGoldenDiagnostics(diags, res.FileSet, true)
	if gotStderr != "" {
		gotStderr += "\n"
	}
	base := strings.TrimSuffix(path, ".rs")
	compare(t, base+".stderr", gotStderr, update, true)

	buffers, _, err := fix.Render(res.FileSet, diags, fix.ApplyOptions{
		Mode:                  fix.ApplyModeAll,
		IncludeMaybeIncorrect: true,
	})
	if err != nil && !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("render fixes: %v", err)
	}
	fixedPath := base + ".fixed"
	fileID := res.Files[0].FileID
	got, changed := buffers[fileID]
	if !changed {
		if _, statErr := os.Stat(fixedPath); statErr == nil && !update {
			t.Fatalf("%s exists but no fix applies", filepath.Base(fixedPath))
		}
		return
	}
	compare(t, fixedPath, string(got), update, false)
}

func compare(t *testing.T, path, got string, update, emptyMeansAbsent bool) {
	t.Helper()
	if update {
		if emptyMeansAbsent && got == "" {
			_ = os.Remove(path)
			return
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("update %s: %v", path, err)
		}
		return
	}
	wantBytes, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && emptyMeansAbsent && got == "" {
			return
		}
		t.Fatalf("read %s: %v", filepath.Base(path), err)
	}
	if want := string(wantBytes); want != got {
		t.Fatalf("%s mismatch:\nwant:\n%s\ngot:\n%s", filepath.Base(path), want, got)
	}
}
