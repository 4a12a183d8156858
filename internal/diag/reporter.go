package diag

import "epslint/internal/source"

// Reporter is the minimal contract phases use to hand diagnostics on.
// Implementations: BagReporter, DedupReporter, NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []*Fix)
}

// DiagnosticReporter is implemented by reporters that keep the whole record,
// including the producing lint name.
type DiagnosticReporter interface {
	Reporter
	ReportDiagnostic(d Diagnostic)
}

// Send delivers d to r, preferring ReportDiagnostic when r supports it.
func Send(r Reporter, d Diagnostic) {
	if r == nil {
		return
	}
	if dr, ok := r.(DiagnosticReporter); ok {
		dr.ReportDiagnostic(d)
		return
	}
	r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note, []*Fix) {}
