package lint

import (
	"fmt"
	"maps"
	"strings"

	"epslint/internal/ast"
	"epslint/internal/diag"
	"epslint/internal/source"
)

// Unit is one parsed file handed to a Runner.
type Unit struct {
	Files *source.FileSet
	AST   *ast.Builder
	File  ast.FileID
}

// Runner applies the passes of a registry to parsed files. It keeps no
// per-file state and may be shared between goroutines.
type Runner struct {
	reg  *Registry
	base scope
}

// NewRunner binds reg to configuration overrides, which may be nil.
func NewRunner(reg *Registry, overrides Overrides) *Runner {
	return &Runner{
		reg:  reg,
		base: reg.baseScope(overrides),
	}
}

// Registry returns the registry the runner was built from.
func (r *Runner) Registry() *Registry { return r.reg }

// RunFile walks every expression of u once and calls each pass whose lint
// is not allowed in the enclosing fn.
func (r *Runner) RunFile(u Unit, rep diag.Reporter) {
	f := u.AST.Files.Get(u.File)
	if f == nil {
		return
	}
	if rep == nil {
		rep = diag.NopReporter{}
	}

	fileScope := r.applyAttrs(r.base, f.Attrs, rep)
	scopes := make(map[ast.ItemID]scope)
	ast.InspectFns(u.AST, u.File, func(fn, parent ast.ItemID) {
		outer := fileScope
		if parent.IsValid() {
			outer = scopes[parent]
		}
		item, _ := u.AST.Items.Fn(fn)
		scopes[fn] = r.applyAttrs(outer, item.Attrs, rep)
	})

	type bound struct {
		pass ExprPass
		spec LevelSpec
	}
	enabled := make(map[ast.ItemID][]bound, len(scopes))
	for fn, s := range scopes {
		for _, name := range s.enabled() {
			if p, ok := r.reg.Lookup(name); ok {
				enabled[fn] = append(enabled[fn], bound{pass: p, spec: s[name]})
			}
		}
	}

	cx := &Context{
		Files:    u.Files,
		AST:      u.AST,
		Exprs:    u.AST.Exprs,
		reporter: rep,
	}
	ast.Inspect(u.AST, u.File, func(fn ast.ItemID, id ast.ExprID) bool {
		cx.fn = fn
		for _, b := range enabled[fn] {
			cx.lint, cx.spec = b.pass.Lint(), b.spec
			b.pass.CheckExpr(cx, id)
		}
		return true
	})
}

// applyAttrs layers the lint-level attributes in attrs over outer. outer is
// never modified.
func (r *Runner) applyAttrs(outer scope, attrs []ast.Attr, rep diag.Reporter) scope {
	s := outer
	owned := false
	for _, attr := range attrs {
		if !attr.IsLintLevel() || attr.Opaque {
			continue
		}
		level, err := ParseLevel(attr.Name)
		if err != nil {
			continue
		}
		for _, arg := range attr.Args {
			names, ok := r.attrLints(arg, rep)
			if !ok {
				continue
			}
			if !owned {
				s, owned = maps.Clone(outer), true
			}
			for _, name := range names {
				s[name] = LevelSpec{
					Level:  level,
					Source: SourceAttr,
					Attr:   fmt.Sprintf("%s(%s)", attr.Name, arg.Path),
					Span:   arg.Span,
				}
			}
		}
	}
	return s
}

// attrLints resolves one attribute argument. Names owned by other tools and
// unknown clippy or rustc lints are ignored; unknown epslint:: names are
// reported.
func (r *Runner) attrLints(arg ast.AttrArg, rep diag.Reporter) ([]string, bool) {
	if _, ok := arg.LintName(); !ok {
		return nil, false
	}
	names, err := r.reg.Expand(arg.Path)
	if err == nil {
		return names, len(names) > 0
	}
	if strings.HasPrefix(arg.Path, "epslint::") {
		diag.ReportWarning(rep, diag.LntUnknownLint, arg.Span, fmt.Sprintf("unknown lint: `%s`", arg.Path)).Emit()
	}
	return nil, false
}
