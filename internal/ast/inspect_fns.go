package ast

// InspectFns calls visit for every fn of file, outer fns before the fns nested
// in their bodies. parent is NoItemID for top-level fns.
func InspectFns(b *Builder, file FileID, visit func(fn, parent ItemID)) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	w := walker{
		b:     b,
		visit: func(ItemID, ExprID) bool { return true },
		enter: visit,
	}
	for _, item := range f.Items {
		w.item(NoItemID, item)
	}
}
