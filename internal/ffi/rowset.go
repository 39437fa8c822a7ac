package ffi

import (
	"context"

	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/handle"
	"github.com/cqlbridge/cqlbridge-go/internal/rowset"
	"github.com/cqlbridge/cqlbridge-go/internal/types"
)

// ColumnMetadata describes one column to the host. Type is null for
// scalar codes.
type ColumnMetadata struct {
	Index    int
	Name     string
	Keyspace string
	Table    string
	Code     types.Code
	Type     handle.TypeHandle
	Frozen   bool
}

type (
	MetadataFunc    func(column ColumnMetadata) exception.Exception
	DeserializeFunc func(index int, data []byte) exception.Exception
)

func (b *Bridge) exportRowSet(rs *rowset.RowSet) uintptr {
	v := &rowSet{RowSet: rs}
	if columns := rs.Columns(); len(columns) > 0 {
		v.tree = columns[0].Type.Tree()
		b.types.Register(v.tree)
	}

	return uintptr(b.rowSets.Add(v))
}

// RowSetFree releases the row set and every type handle pointing into it
func (b *Bridge) RowSetFree(h handle.Handle) {
	b.rowSets.Free(h)
}

func (b *Bridge) RowSetColumnsCount(h handle.Handle) int {
	return b.rowSets.Get(h).ColumnsCount()
}

// RowSetFillColumnsMetadata calls fn for every column. An exception from fn
// stops the iteration and is returned as is.
func (b *Bridge) RowSetFillColumnsMetadata(
	h handle.Handle, ctors *exception.Constructors, fn MetadataFunc,
) exception.Exception {
	rs := b.rowSets.Get(h)
	err := rs.FillColumnsMetadata(func(index int, col rowset.Column, code types.Code, typ types.Ref, frozen bool) error {
		return exception.Raised(fn(ColumnMetadata{
			Index:    index,
			Name:     col.Name,
			Keyspace: col.Keyspace,
			Table:    col.Table,
			Code:     code,
			Type:     b.types.Handle(typ),
			Frozen:   frozen,
		}))
	})

	return exception.From(err, ctors)
}

// RowSetNextRow blocks until the next row is read and passes every non-null
// value to fn. data is valid during the fn call only.
func (b *Bridge) RowSetNextRow(
	h handle.Handle, ctors *exception.Constructors, fn DeserializeFunc,
) (hasRow bool, ex exception.Exception) {
	rs := b.rowSets.Get(h)
	hasRow, err := rs.NextRow(context.Background(), func(index int, data []byte) error {
		return exception.Raised(fn(index, data))
	})

	return hasRow, exception.From(err, ctors)
}
