package ast

import (
	"epslint/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
)

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type FnParam struct {
	Name source.StringID
	Type TypeRef
	Span source.Span
}

type FnItem struct {
	Name     source.StringID
	NameSpan source.Span
	Pub      bool
	Params   []FnParam
	Result   TypeRef // zero for ()
	Body     ExprID  // ExprBlock
	Attrs    []Attr  // outer attributes
}

type Items struct {
	Arena *Arena[Item]
	Fns   *Arena[FnItem]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena: NewArena[Item](capHint),
		Fns:   NewArena[FnItem](capHint),
	}
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewFn(span source.Span, fn FnItem) ItemID {
	payload := i.Fns.Allocate(fn)
	return ItemID(i.Arena.Allocate(Item{Kind: ItemFn, Span: span, Payload: PayloadID(payload)}))
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}
