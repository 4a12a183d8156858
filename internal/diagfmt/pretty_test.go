package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"epslint/internal/diag"
	"epslint/internal/source"
)

func TestPrettyRustcLayout(t *testing.T) {
	bag, fs, _ := absBag(t, "test.rs", true)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	want := strings.Join([]string{
		"warning[LNT3001]: float equality check without `.abs()`",
		" --> test.rs:2:5",
		"  |",
		"2 |     (a - b) < f32::EPSILON",
		"  |     ^^^^^^^^^^^^^^^^^^^^^^",
		"  |",
		"  = note: `#[warn(clippy::float_equality_without_abs)]` on by default",
		"  = help: add `.abs()`: `(a - b).abs()`",
		"  = help: for further information run `epslint explain float_equality_without_abs`",
		"",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("pretty output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyPathModes(t *testing.T) {
	bag, fs, _ := absBag(t, "/home/user/project/src/test.rs", false)
	fs.SetBaseDir("/home/user/project")

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "--> /home/user/project/src/test.rs:2:5"},
		{"relative", PathModeRelative, "--> src/test.rs:2:5"},
		{"basename", PathModeBasename, "--> test.rs:2:5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, Context: 1})
			if !strings.Contains(buf.String(), tt.contains) {
				t.Errorf("expected %q in:\n%s", tt.contains, buf.String())
			}
		})
	}
}

func TestPrettyContextLines(t *testing.T) {
	bag, fs, _ := absBag(t, "test.rs", false)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	out := buf.String()
	for _, want := range []string{
		"1 | fn f(a: f32, b: f32) -> bool {",
		"2 |     (a - b) < f32::EPSILON",
		"3 | }",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected context line %q in:\n%s", want, out)
		}
	}
}

func TestPrettyFixesAndPreview(t *testing.T) {
	bag, fs, _ := absBag(t, "test.rs", false)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowFixes: true, ShowPreview: true})
	out := buf.String()
	for _, want := range []string{
		"fix #1: add `.abs()` (MaybeIncorrect) id=F1",
		`apply="(a - b).abs()" at test.rs:2:5`,
		"preview:",
		"- " + "    (a - b) < f32::EPSILON",
		"+ " + "    (a - b).abs() < f32::EPSILON",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "= help: add") {
		t.Errorf("help line should be replaced by the fix listing:\n%s", out)
	}
}

func TestPrettySpannedNote(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte("#![deny(clippy::all)]\n"+absSrc))
	d := diag.New(diag.SevError, diag.LntFloatEqualityWithoutAbs, source.Span{File: id, Start: 57, End: 79}, "msg")
	d = d.WithNote(source.Span{File: id, Start: 8, End: 19}, "the lint level is defined here")
	bag := diag.NewBag(0)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "defined here") {
		t.Errorf("spanned notes are hidden without ShowNotes:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if want := "= note: test.rs:1:9: the lint level is defined here"; !strings.Contains(buf.String(), want) {
		t.Errorf("expected %q in:\n%s", want, buf.String())
	}
	if !strings.HasPrefix(buf.String(), "error[LNT3001]: msg") {
		t.Errorf("unexpected header:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs, _ := absBag(t, "test.rs", false)

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("coloured output has no escape codes")
	}
}

func TestUnderlineWidth(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		start, end uint32
		pad, width int
	}{
		{"ascii", "a == b", 3, 5, 2, 2},
		{"tab", "\tab", 2, 4, 4, 2},
		{"wide", "世 a", 5, 6, 3, 1},
		{"empty span", "abc", 2, 2, 1, 1},
		{"past end", "abc", 2, 10, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pad, width := underline(tt.line, tt.start, tt.end)
			if pad != tt.pad || width != tt.width {
				t.Errorf("underline(%q, %d, %d) = (%d, %d), want (%d, %d)",
					tt.line, tt.start, tt.end, pad, width, tt.pad, tt.width)
			}
		})
	}
}

func TestParsePathMode(t *testing.T) {
	for _, s := range []string{"auto", "absolute", "relative", "basename"} {
		m, err := ParsePathMode(s)
		if err != nil {
			t.Fatalf("ParsePathMode(%q): %v", s, err)
		}
		if m.String() != s {
			t.Errorf("round trip %q -> %q", s, m.String())
		}
	}
	if _, err := ParsePathMode("nope"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
