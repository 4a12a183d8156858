package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("main.rs", []byte("fn a() {}"), 0)
	id2 := fs.Add("main.rs", []byte("fn b() {}"), 0)
	require.NotEqual(t, id1, id2)

	latest, ok := fs.GetLatest("main.rs")
	require.True(t, ok)
	assert.Equal(t, id2, latest)
	assert.Equal(t, "fn a() {}", string(fs.Get(id1).Content))
	assert.Equal(t, 2, fs.Len())
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}},
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 4, Col: 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		assert.Equal(t, tt.want, start, "offset %d", tt.off)
	}
}

func TestSnippet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("let _ = (a - b) < f32::EPSILON;"))

	got, ok := fs.Snippet(Span{File: id, Start: 8, End: 15})
	require.True(t, ok)
	assert.Equal(t, "(a - b)", got)

	_, ok = fs.Snippet(Span{File: id, Start: 8, End: 400})
	assert.False(t, ok)
	_, ok = fs.Snippet(Span{File: id + 7, Start: 0, End: 1})
	assert.False(t, ok)
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.rs", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	assert.Equal(t, "first", f.GetLine(1))
	assert.Equal(t, "second", f.GetLine(2))
	assert.Equal(t, "third", f.GetLine(3))
	assert.Equal(t, "", f.GetLine(4))
	assert.Equal(t, "", f.GetLine(0))
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.rs")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\n")...)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	fs := NewFileSet()
	id, err := fs.Load(path)
	require.NoError(t, err)

	f := fs.Get(id)
	assert.Equal(t, "a\nb\n", string(f.Content))
	assert.NotZero(t, f.Flags&FileHadBOM)
	assert.NotZero(t, f.Flags&FileNormalizedCRLF)
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	assert.Equal(t, Span{File: 1, Start: 2, End: 8}, a.Cover(b))
	assert.Equal(t, a, a.Cover(Span{File: 2, Start: 0, End: 20}))
	assert.True(t, a.Cover(b).Contains(a))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(Span{File: 1, Start: 8, End: 9}))
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("EPSILON")
	b := in.Intern("EPSILON")
	assert.Equal(t, a, b)
	assert.NotEqual(t, NoStringID, a)

	s, ok := in.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, "EPSILON", s)

	_, ok = in.Lookup(StringID(99))
	assert.False(t, ok)
	assert.Equal(t, 2, in.Len())
}
