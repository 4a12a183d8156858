// Package lint runs expression lints over parsed files.
//
// Lints are documented in the embedded lints.toml catalog and implemented as
// ExprPass values registered in a Registry. A Runner resolves the effective
// level of every lint for every fn, taking configuration overrides, inner
// file attributes (#![warn(...)]) and outer fn attributes (#[allow(...)])
// into account in that order, and hands each expression to the passes that
// are not allowed there.
package lint
