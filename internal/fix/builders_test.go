package fix

import (
	"testing"

	"epslint/internal/diag"
	"epslint/internal/source"
)

func TestInsertTextCollapsesSpan(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte("let x = 1"))

	fix := InsertText("insert `;`", source.Span{File: fileID, Start: 9, End: 12}, ";")
	if len(fix.Edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(fix.Edits))
	}
	edit := fix.Edits[0]
	if edit.Span.Start != 9 || edit.Span.End != 9 {
		t.Fatalf("expected empty span at 9, got %v", edit.Span)
	}
	if fix.Applicability != diag.MachineApplicable {
		t.Fatalf("expected MachineApplicable, got %s", fix.Applicability)
	}
}

func TestReplaceSpanOptions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.rs", []byte("a - b < f32::EPSILON"))
	span := source.Span{File: fileID, Start: 0, End: 5}

	fix := ReplaceSpan("add `.abs()`", span, "(a - b).abs()", "a - b",
		WithApplicability(diag.MaybeIncorrect),
		Preferred(),
		WithID("abs-1"),
		nil,
	)

	if fix.Applicability != diag.MaybeIncorrect {
		t.Errorf("expected MaybeIncorrect, got %s", fix.Applicability)
	}
	if !fix.IsPreferred {
		t.Error("expected preferred fix")
	}
	if fix.ID != "abs-1" {
		t.Errorf("expected id abs-1, got %q", fix.ID)
	}
	if fix.Kind != diag.FixKindQuickFix {
		t.Errorf("expected quickfix, got %s", fix.Kind)
	}
	edit := fix.Edits[0]
	if edit.OldText != "a - b" || edit.NewText != "(a - b).abs()" {
		t.Errorf("unexpected edit %+v", edit)
	}
}

func TestSpansConflict(t *testing.T) {
	edit := func(start, end uint32) diag.TextEdit {
		return diag.TextEdit{Span: source.Span{Start: start, End: end}}
	}
	tests := []struct {
		name string
		a, b diag.TextEdit
		want bool
	}{
		{"disjoint", edit(0, 2), edit(2, 4), false},
		{"overlap", edit(0, 3), edit(2, 4), true},
		{"nested", edit(0, 10), edit(2, 4), true},
		{"two inserts", edit(3, 3), edit(3, 3), false},
		{"insert inside", edit(3, 3), edit(2, 4), true},
		{"insert at end", edit(4, 4), edit(2, 4), false},
	}
	for _, tt := range tests {
		if got := spansConflict(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: spansConflict = %v, want %v", tt.name, got, tt.want)
		}
		if got := spansConflict(tt.b, tt.a); got != tt.want {
			t.Errorf("%s (swapped): spansConflict = %v, want %v", tt.name, got, tt.want)
		}
	}
}
