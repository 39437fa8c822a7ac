package cql

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"reflect"

	"github.com/gocql/gocql"

	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/rowset"
	"github.com/cqlbridge/cqlbridge-go/internal/types"
	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
)

//go:generate mockgen -destination iterator_mock_test.go -package cql -write_package_comment=false github.com/cqlbridge/cqlbridge-go/internal/cql Iterator

var (
	_ interface {
		rowset.Pager
		io.Closer
	} = (*pager)(nil)
	_ Iterator = (*gocql.Iter)(nil)
)

// Iterator is the part of the driver iterator the pager reads pages with
type Iterator interface {
	Columns() []gocql.ColumnInfo
	WillSwitchPage() bool
	Scan(dest ...interface{}) bool
	Close() error
}

// capture keeps the raw bytes of a value instead of decoding it.
// nil data stands for null.
type capture struct {
	data []byte
}

func (c *capture) UnmarshalCQL(_ gocql.TypeInfo, data []byte) error {
	c.data = data

	return nil
}

// slot locates the captures of one column. Tuple columns are scanned as one
// capture per element.
type slot struct {
	first int
	n     int
	tuple bool
}

type pager struct {
	iter    Iterator
	release func()
	infos   []gocql.ColumnInfo
	columns []rowset.Column
	tree    *types.Tree

	slots    []slot
	captures []capture
	dest     []interface{}

	buf    []byte
	values []rowset.RawValue
	row    row

	closed bool
}

// newPager reads rows from iter, release is called once the pager is closed
func newPager(iter Iterator, release func()) *pager {
	infos := iter.Columns()
	columns, tree := Columns(infos)
	p := &pager{
		iter:    iter,
		release: release,
		infos:   infos,
		columns: columns,
		tree:    tree,
		slots:   make([]slot, len(infos)),
		values:  make([]rowset.RawValue, 0, len(infos)),
	}
	n := 0
	for i, info := range infos {
		s := slot{first: n, n: 1}
		if tuple, ok := tupleInfo(info.TypeInfo); ok {
			s.n, s.tuple = len(tuple.Elems), true
		}
		p.slots[i] = s
		n += s.n
	}
	p.captures = make([]capture, n)
	p.dest = make([]interface{}, n)
	for i := range p.captures {
		p.dest[i] = &p.captures[i]
	}

	return p
}

func tupleInfo(info gocql.TypeInfo) (gocql.TupleTypeInfo, bool) {
	switch t := info.(type) {
	case gocql.TupleTypeInfo:
		return t, true
	case *gocql.TupleTypeInfo:
		return *t, true
	default:
		return gocql.TupleTypeInfo{}, false
	}
}

// Columns converts result metadata into row set columns sharing one type tree
func Columns(infos []gocql.ColumnInfo) ([]rowset.Column, *types.Tree) {
	b := types.NewBuilder()
	ids := make([]types.ID, len(infos))
	for i, info := range infos {
		ids[i] = TypeOf(b, info.TypeInfo)
	}
	tree := b.Build()
	columns := make([]rowset.Column, len(infos))
	for i, info := range infos {
		columns[i] = rowset.Column{
			Name:     info.Name,
			Keyspace: info.Keyspace,
			Table:    info.Table,
			Type:     tree.Ref(ids[i]),
		}
	}

	return columns, tree
}

func (p *pager) Columns() []rowset.Column {
	return p.columns
}

// Tree is the type tree referenced by the columns
func (p *pager) Tree() *types.Tree {
	return p.tree
}

func (p *pager) NextRow(ctx context.Context) (rowset.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, xerrors.WithStackTrace(err)
	}

	switching := p.iter.WillSwitchPage()
	if !p.iter.Scan(p.dest...) {
		if switching && !sameColumns(p.infos, p.iter.Columns()) {
			return nil, xerrors.WithStackTrace(rowset.ErrSchemaChanged)
		}
		if err := p.iter.Close(); err != nil {
			return nil, xerrors.WithStackTrace(exception.WithKind(exception.Execution, err))
		}

		return nil, io.EOF
	}
	if switching && !sameColumns(p.infos, p.iter.Columns()) {
		return nil, xerrors.WithStackTrace(rowset.ErrSchemaChanged)
	}

	p.frame()
	p.row = row{values: p.values}

	return &p.row, nil
}

// frame turns the captures of the last scan into one raw value per column.
// Values are valid until the next scan.
func (p *pager) frame() {
	p.buf = p.buf[:0]
	p.values = p.values[:0]
	for _, s := range p.slots {
		if !s.tuple {
			data := p.captures[s.first].data
			p.values = append(p.values, rowset.RawValue{Data: data, Null: data == nil})

			continue
		}
		var value rowset.RawValue
		p.buf, value = appendTuple(p.buf, p.captures[s.first:s.first+s.n])
		p.values = append(p.values, value)
	}
}

// appendTuple serializes tuple elements back into the native protocol
// layout: an int32 length before every element, -1 for null. A tuple
// without any non-null element is reported as null.
func appendTuple(buf []byte, elems []capture) ([]byte, rowset.RawValue) {
	null := true
	for _, e := range elems {
		if e.data != nil {
			null = false

			break
		}
	}
	if null {
		return buf, rowset.RawValue{Null: true}
	}

	start := len(buf)
	for _, e := range elems {
		if e.data == nil {
			buf = binary.BigEndian.AppendUint32(buf, math.MaxUint32)

			continue
		}
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(e.data)))
		buf = append(buf, e.data...)
	}

	return buf, rowset.RawValue{Data: buf[start:len(buf):len(buf)]}
}

func (p *pager) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	err := p.iter.Close()
	if p.release != nil {
		p.release()
	}

	return xerrors.WithStackTrace(xerrors.HideEOF(err))
}

type row struct {
	values []rowset.RawValue
	pos    int
}

func (r *row) Next() (rowset.RawValue, bool, error) {
	if r.pos >= len(r.values) {
		return rowset.RawValue{}, false, nil
	}
	v := r.values[r.pos]
	r.pos++

	return v, true, nil
}

// sameColumns compares result metadata of two pages, type parameters included
func sameColumns(lhs, rhs []gocql.ColumnInfo) bool {
	return reflect.DeepEqual(lhs, rhs)
}
