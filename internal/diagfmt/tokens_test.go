package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"epslint/internal/ast"
	"epslint/internal/lexer"
	"epslint/internal/parser"
	"epslint/internal/source"
	"epslint/internal/token"
)

func lexAll(fs *source.FileSet, id source.FileID) []token.Token {
	lx := lexer.New(fs.Get(id), lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.rs", []byte("a - b // done\n"))
	toks := lexAll(fs, id)

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "Ident") || !strings.Contains(lines[0], `"a" at 1:1-1:2`) {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "(leading: space)") {
		t.Errorf("expected leading trivia on %q", lines[1])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 4 || out[3].Kind != "EOF" {
		t.Errorf("unexpected JSON tokens: %+v", out)
	}
}

func TestFormatASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.rs", []byte("#![warn(clippy::all)]\nfn eq(a: f32, b: f32) -> bool {\n    (a - b) < f32::EPSILON\n}\n"))
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(fs.Get(id), lexer.Options{}), b, parser.Options{})

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, res.File, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Attr #![warn(clippy::all)]",
		"└─ Fn eq -> bool",
		"Param a: f32",
		"Tail",
		"Binary <",
		"Group (span: 3:5-3:12)",
		"Binary -",
		"Path f32::EPSILON",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}
