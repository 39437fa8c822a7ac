package ffi

import (
	"github.com/cqlbridge/cqlbridge-go/internal/handle"
	"github.com/cqlbridge/cqlbridge-go/internal/types"
)

// Type accessors. A null or stale handle and a wrong accessor for the node
// shape are contract violations and panic.

func (b *Bridge) TypeInfoCode(h handle.TypeHandle) types.Code {
	return b.types.Ref(h).Code()
}

func (b *Bridge) TypeInfoListChild(h handle.TypeHandle) handle.TypeHandle {
	return b.types.Handle(b.types.Ref(h).ListChild())
}

func (b *Bridge) TypeInfoSetChild(h handle.TypeHandle) handle.TypeHandle {
	return b.types.Handle(b.types.Ref(h).SetChild())
}

func (b *Bridge) TypeInfoMapChildren(h handle.TypeHandle) (key, value handle.TypeHandle) {
	k, v := b.types.Ref(h).MapChildren()

	return b.types.Handle(k), b.types.Handle(v)
}

func (b *Bridge) TypeInfoTupleFieldCount(h handle.TypeHandle) int {
	return b.types.Ref(h).TupleFieldCount()
}

func (b *Bridge) TypeInfoTupleField(h handle.TypeHandle, i int) handle.TypeHandle {
	return b.types.Handle(b.types.Ref(h).TupleField(i))
}

func (b *Bridge) TypeInfoUDTName(h handle.TypeHandle) string {
	return b.types.Ref(h).UDTName()
}

func (b *Bridge) TypeInfoUDTKeyspace(h handle.TypeHandle) string {
	return b.types.Ref(h).UDTKeyspace()
}

func (b *Bridge) TypeInfoUDTFieldCount(h handle.TypeHandle) int {
	return b.types.Ref(h).UDTFieldCount()
}

func (b *Bridge) TypeInfoUDTField(h handle.TypeHandle, i int) (name string, typ handle.TypeHandle) {
	name, ref := b.types.Ref(h).UDTField(i)

	return name, b.types.Handle(ref)
}
