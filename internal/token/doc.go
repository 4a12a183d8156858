// Package token defines lexical token kinds and trivia for the Rust subset epslint reads.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace are leading Trivia and never appear in the token stream.
//   - Primitive type names (f32, f64, i32, ...) are identifiers.
package token
