package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"epslint/internal/diag"
	"epslint/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	note, help      *color.Color
	gutter, bold    *color.Color
	added, removed  *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		note:    mk(color.FgGreen, color.Bold),
		help:    mk(color.FgCyan, color.Bold),
		gutter:  mk(color.FgBlue, color.Bold),
		bold:    mk(color.Bold),
		added:   mk(color.FgGreen),
		removed: mk(color.FgRed),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics the way rustc does:
//
//	warning[LNT3001]: float equality check without `.abs()`
//	 --> src/lib.rs:7:13
//	  |
//	7 |     let _ = (a - b) < f32::EPSILON;
//	  |             ^^^^^^^^^^^^^^^^^^^^^^
//	  |
//	  = note: `#[deny(clippy::float_equality_without_abs)]` on by default
//	  = help: add `.abs()`: `(a - b).abs()`
//
// Items are printed in bag order; call bag.Sort() first for stable output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pr := prettyPrinter{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for _, d := range bag.Items() {
		pr.diagnostic(d)
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
}

func (pr *prettyPrinter) diagnostic(d diag.Diagnostic) {
	sevColor := pr.pal.severity(d.Severity)
	fmt.Fprintf(pr.w, "%s%s\n",
		sevColor.Sprintf("%s[%s]", d.Severity.Label(), d.Code.ID()),
		pr.pal.bold.Sprint(": "+d.Message))

	file := pr.fs.Get(d.Primary.File)
	if file == nil {
		fmt.Fprintln(pr.w)
		return
	}
	start, end := pr.fs.Resolve(d.Primary)

	first := start.Line
	if ctx := uint32(max(pr.opts.Context, 0)); first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + uint32(max(pr.opts.Context, 0))
	if total := uint32(len(file.LineIdx)) + 1; last > total {
		last = total
	}
	gutter := strings.Repeat(" ", len(strconv.FormatUint(uint64(last), 10)))

	fmt.Fprintf(pr.w, "%s%s %s:%d:%d\n", gutter, pr.pal.gutter.Sprint("-->"),
		formatPath(pr.fs, d.Primary.File, pr.opts.PathMode), start.Line, start.Col)
	fmt.Fprintf(pr.w, "%s %s\n", gutter, pr.pal.gutter.Sprint("|"))

	for line := first; line <= last; line++ {
		text := file.GetLine(line)
		num := fmt.Sprintf("%*d", len(gutter), line)
		fmt.Fprintf(pr.w, "%s %s %s\n", pr.pal.gutter.Sprint(num), pr.pal.gutter.Sprint("|"), pr.clip(expandTabs(text)))
		if line != start.Line {
			continue
		}
		endCol := end.Col
		if end.Line != start.Line {
			endCol = uint32(len(text)) + 1
		}
		pad, width := underline(text, start.Col, endCol)
		fmt.Fprintf(pr.w, "%s %s %s%s\n", gutter, pr.pal.gutter.Sprint("|"),
			strings.Repeat(" ", pad), sevColor.Sprint(strings.Repeat("^", width)))
	}
	fmt.Fprintf(pr.w, "%s %s\n", gutter, pr.pal.gutter.Sprint("|"))

	for _, n := range d.Notes {
		if n.Span == d.Primary {
			fmt.Fprintf(pr.w, "%s %s %s\n", gutter, pr.pal.note.Sprint("= note:"), n.Msg)
			continue
		}
		if !pr.opts.ShowNotes {
			continue
		}
		ns, _ := pr.fs.Resolve(n.Span)
		fmt.Fprintf(pr.w, "%s %s %s:%d:%d: %s\n", gutter, pr.pal.note.Sprint("= note:"),
			formatPath(pr.fs, n.Span.File, pr.opts.PathMode), ns.Line, ns.Col, n.Msg)
	}

	if pr.opts.ShowFixes {
		pr.fixes(gutter, d.Fixes)
	} else if help, ok := helpLine(d.Fixes); ok {
		fmt.Fprintf(pr.w, "%s %s %s\n", gutter, pr.pal.help.Sprint("= help:"), help)
	}
	if d.Lint != "" {
		fmt.Fprintf(pr.w, "%s %s for further information run `epslint explain %s`\n", gutter, pr.pal.help.Sprint("= help:"), d.Lint)
	}
	fmt.Fprintln(pr.w)
}

func (pr *prettyPrinter) fixes(gutter string, fixes []*diag.Fix) {
	for i, f := range fixes {
		if f == nil {
			continue
		}
		line := fmt.Sprintf("fix #%d: %s (%s)", i+1, f.Title, f.Applicability)
		if f.ID != "" {
			line += " id=" + f.ID
		}
		fmt.Fprintf(pr.w, "%s %s %s\n", gutter, pr.pal.help.Sprint("="), line)
		for _, e := range f.Edits {
			pos, _ := pr.fs.Resolve(e.Span)
			fmt.Fprintf(pr.w, "%s     apply=%q at %s:%d:%d\n", gutter, e.NewText,
				formatPath(pr.fs, e.Span.File, pr.opts.PathMode), pos.Line, pos.Col)
		}
		if !pr.opts.ShowPreview {
			continue
		}
		preview, err := buildFixPreview(pr.fs, f)
		if err != nil {
			continue
		}
		fmt.Fprintf(pr.w, "%s     preview:\n", gutter)
		for _, l := range preview.before {
			fmt.Fprintf(pr.w, "%s       %s\n", gutter, pr.pal.removed.Sprint("- "+expandTabs(l)))
		}
		for _, l := range preview.after {
			fmt.Fprintf(pr.w, "%s       %s\n", gutter, pr.pal.added.Sprint("+ "+expandTabs(l)))
		}
	}
}

// helpLine summarises the preferred single-edit fix as its title followed by
// the replacement text in backticks.
func helpLine(fixes []*diag.Fix) (string, bool) {
	var pick *diag.Fix
	for _, f := range fixes {
		if f == nil || len(f.Edits) != 1 {
			continue
		}
		if pick == nil || (f.IsPreferred && !pick.IsPreferred) {
			pick = f
		}
	}
	if pick == nil {
		return "", false
	}
	return fmt.Sprintf("%s: `%s`", pick.Title, pick.Edits[0].NewText), true
}

func (pr *prettyPrinter) clip(line string) string {
	if pr.opts.Width == 0 {
		return line
	}
	return runewidth.Truncate(line, int(pr.opts.Width), "…")
}

// underline returns the display offset and width of the caret run under
// bytes [startCol, endCol) of line (1-based columns).
func underline(line string, startCol, endCol uint32) (pad, width int) {
	s := min(int(startCol)-1, len(line))
	e := min(int(endCol)-1, len(line))
	s = max(s, 0)
	e = max(e, s)
	pad = runewidth.StringWidth(expandTabs(line[:s]))
	width = runewidth.StringWidth(expandTabs(line[:e])) - pad
	return pad, max(width, 1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
