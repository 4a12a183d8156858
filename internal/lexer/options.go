package lexer

import (
	"epslint/internal/diag"
	"epslint/internal/source"
)

type Options struct {
	// Reporter receives lexical errors. nil drops them; lexing continues either way.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
}
