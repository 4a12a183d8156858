package diagfmt

import (
	"testing"

	"epslint/internal/diag"
	"epslint/internal/fix"
	"epslint/internal/source"
)

const absSrc = "fn f(a: f32, b: f32) -> bool {\n    (a - b) < f32::EPSILON\n}\n"

// comparison covers `(a - b) < f32::EPSILON` on line 2.
var (
	comparison = struct{ start, end uint32 }{35, 57}
	difference = struct{ start, end uint32 }{35, 42}
)

func absBag(t *testing.T, path string, withNote bool) (*diag.Bag, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, []byte(absSrc))
	primary := source.Span{File: id, Start: comparison.start, End: comparison.end}
	d := diag.New(diag.SevWarning, diag.LntFloatEqualityWithoutAbs, primary, "float equality check without `.abs()`")
	d.Lint = "float_equality_without_abs"
	if withNote {
		d = d.WithNote(primary, "`#[warn(clippy::float_equality_without_abs)]` on by default")
	}
	d = d.WithFixSuggestion(fix.ReplaceSpan("add `.abs()`",
		source.Span{File: id, Start: difference.start, End: difference.end},
		"(a - b).abs()", "(a - b)",
		fix.WithApplicability(diag.MaybeIncorrect), fix.Preferred(), fix.WithID("F1")))
	bag := diag.NewBag(0)
	bag.Add(d)
	return bag, fs, id
}
