package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	maxFuzzInput = 1 << 16
	maxSeedBytes = 64 << 10
)

var builtinSeeds = []string{
	"",
	"fn main() {}\n",
	"fn eq(a: f64, b: f64) -> bool { (a - b) < f64::EPSILON }\n",
	"fn eq(a: f32, b: f32) -> bool { f32::EPSILON > a - b }\n",
	"fn eq(a: &f64, b: &f64) -> bool { (*a - *b).abs() < std::f64::EPSILON }\n",
	"#![warn(clippy::float_equality_without_abs)]\n#[allow(clippy::float_equality_without_abs)]\nfn f() {}\n",
	"fn f() { let x = (1.0 - 2.0; }\n",
	"fn f() { if a - b < EPS { return; } else { g(a, b) } }\n",
	"fn f() { { { { } } } }\n",
	"/* unterminated",
	"fn f() -> bool { \"str\" < 'c' }",
	"use a::{b, c};\nstruct S { x: [f32; 2] }\nimpl S { fn f(&self) {} }\npub(crate) unsafe fn g() {}\n",
	"fn f() -> bool { a < b < c }\n",
	"struct S { x: f32,",
}

// addCorpusSeeds adds the builtin seeds and every .rs fixture of the lint tests.
func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	paths, _ := filepath.Glob(filepath.Join("..", "lints", "*", "testdata", "ui", "*.rs"))
	for _, p := range paths {
		// #nosec G304 -- path comes from a repository testdata glob
		src, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		f.Add(clamp(src, maxSeedBytes))
	}
}

func clamp(input []byte, limit int) []byte {
	if len(input) > limit {
		input = input[:limit]
	}
	return append([]byte(nil), input...)
}
