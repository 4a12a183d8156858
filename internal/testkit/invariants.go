package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"epslint/internal/ast"
	"epslint/internal/source"
)

// CheckSpanInvariants checks the spans of a parsed file:
//  1. the file span lies within the content and belongs to sf;
//  2. every item span is non-empty and inside the file span;
//  3. every expression span is non-empty and inside its fn item;
//  4. children of binary and group expressions lie inside their parent.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent || f.Span.Start > f.Span.End {
		return fmt.Errorf("file span %v outside content of %d bytes", f.Span, lenContent)
	}
	if len(f.Items) > 0 && f.Span.Empty() {
		return fmt.Errorf("file span is empty but has %d items", len(f.Items))
	}

	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.Empty() {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
	}

	var exprErr error
	ast.Inspect(b, fileID, func(fn ast.ItemID, id ast.ExprID) bool {
		if exprErr != nil {
			return false
		}
		exprErr = checkExpr(b, fn, id)
		return exprErr == nil
	})
	return exprErr
}

func checkExpr(b *ast.Builder, fn ast.ItemID, id ast.ExprID) error {
	e := b.Exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	if e.Span.Empty() {
		return fmt.Errorf("empty %s span at %v", e.Kind, e.Span)
	}
	if item := b.Items.Get(fn); item != nil && !item.Span.Contains(e.Span) {
		return fmt.Errorf("%s span %v is outside its fn %v", e.Kind, e.Span, item.Span)
	}
	inside := func(child ast.ExprID) error {
		c := b.Exprs.Get(child)
		if c != nil && !e.Span.Contains(c.Span) {
			return fmt.Errorf("%s child span %v escapes parent %v", e.Kind, c.Span, e.Span)
		}
		return nil
	}
	if bin, ok := b.Exprs.Binary(id); ok {
		if err := inside(bin.Left); err != nil {
			return err
		}
		return inside(bin.Right)
	}
	if g, ok := b.Exprs.Group(id); ok {
		return inside(g.Inner)
	}
	return nil
}
