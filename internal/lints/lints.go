// Package lints lists the passes built into epslint.
package lints

import (
	"epslint/internal/lint"
	"epslint/internal/lints/floatabs"
)

// Passes returns a fresh instance of every builtin pass.
func Passes() []lint.ExprPass {
	return []lint.ExprPass{
		floatabs.New(),
	}
}

// Registry returns a registry holding every builtin pass, documented by the
// builtin catalog.
func Registry() *lint.Registry {
	reg := lint.NewRegistry(nil)
	for _, p := range Passes() {
		if err := reg.Register(p); err != nil {
			panic(err)
		}
	}
	return reg
}
