package lexer

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"epslint/internal/source"
)

// Cursor walks the bytes of one file. Off never passes the end of the
// content; reads past it yield 0.
type Cursor struct {
	src  []byte
	file source.FileID
	Off  uint32
}

func NewCursor(f *source.File) Cursor {
	return Cursor{src: f.Content, file: f.ID}
}

func (c *Cursor) rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.src[c.Off:]
}

func (c *Cursor) EOF() bool {
	return uint64(c.Off) >= uint64(len(c.src))
}

// At returns the byte n positions ahead.
func (c *Cursor) At(n int) byte {
	if rest := c.rest(); n < len(rest) {
		return rest[n]
	}
	return 0
}

func (c *Cursor) Peek() byte { return c.At(0) }

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	rest := c.rest()
	if len(rest) < 2 {
		return 0, 0, false
	}
	return rest[0], rest[1], true
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.Peek() != b {
		return false
	}
	c.Off++
	return true
}

// PeekRune decodes the next rune; size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	rest := c.rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

// BumpRune consumes the next rune, or one byte of an invalid sequence.
func (c *Cursor) BumpRune() {
	_, size := c.PeekRune()
	if n, err := safecast.Conv[uint32](size); err == nil {
		c.Off += n
	}
}

// Mark is a saved offset used to build spans.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom returns the span from m to the current offset.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.Off}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
