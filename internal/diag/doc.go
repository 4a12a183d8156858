// Package diag defines the diagnostic model shared by the lexer, the parser
// and the lint passes.
//
// # Scope
//
// Package diag does not perform formatting beyond the single-line golden form,
// IO, or CLI integration. Rendering lives in internal/diagfmt; application of
// fixes lives in internal/fix.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier (codes.go) with a stable ID such as LNT3001.
//   - Lint: name of the producing lint, empty for lexer and parser errors.
//   - Primary span, optional Notes and Fixes.
//
// # Fix suggestions
//
// Fix is data only: a title, a kind, an Applicability and concrete TextEdits.
// Applicability mirrors the confidence levels editors understand:
// MachineApplicable, MaybeIncorrect, HasPlaceholders and Unspecified. Bulk
// fix modes only take MachineApplicable fixes unless the caller opts in to
// MaybeIncorrect ones; HasPlaceholders is never applied automatically.
//
// TextEdit.OldText is an optional guard that the fix engine checks against
// the current source before applying an edit.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. ReportBuilder chains WithLint, WithNote
// and WithFixSuggestion before Emit. BagReporter collects into a Bag, which
// supports sorting, deduplication and filtering.
package diag
