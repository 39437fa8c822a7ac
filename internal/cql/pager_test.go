package cql

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/rowset"
)

func TestAppendTuple(t *testing.T) {
	for _, tt := range []struct {
		name  string
		elems []capture
		exp   rowset.RawValue
	}{
		{
			name:  "Values",
			elems: []capture{{data: []byte{0, 0, 0, 7}}, {data: []byte("ab")}},
			exp: rowset.RawValue{Data: []byte{
				0, 0, 0, 4, 0, 0, 0, 7,
				0, 0, 0, 2, 'a', 'b',
			}},
		},
		{
			name:  "NullElement",
			elems: []capture{{data: []byte{1}}, {data: nil}},
			exp: rowset.RawValue{Data: []byte{
				0, 0, 0, 1, 1,
				0xFF, 0xFF, 0xFF, 0xFF,
			}},
		},
		{
			name:  "EmptyElement",
			elems: []capture{{data: []byte{}}, {data: nil}},
			exp: rowset.RawValue{Data: []byte{
				0, 0, 0, 0,
				0xFF, 0xFF, 0xFF, 0xFF,
			}},
		},
		{
			name:  "Null",
			elems: []capture{{}, {}},
			exp:   rowset.RawValue{Null: true},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			buf, value := appendTuple([]byte("prefix"), tt.elems)
			require.Equal(t, tt.exp, value)
			require.Equal(t, "prefix", string(buf[:6]))
		})
	}
}

func TestFrame(t *testing.T) {
	p := &pager{
		slots: []slot{
			{first: 0, n: 1},
			{first: 1, n: 2, tuple: true},
			{first: 3, n: 1},
			{first: 4, n: 1, tuple: true},
		},
		captures: []capture{
			{data: []byte("id")},
			{data: []byte{1}},
			{data: nil},
			{data: nil},
			{data: nil},
		},
	}
	p.frame()
	require.Equal(t, []rowset.RawValue{
		{Data: []byte("id")},
		{Data: []byte{0, 0, 0, 1, 1, 0xFF, 0xFF, 0xFF, 0xFF}},
		{Null: true},
		{Null: true},
	}, p.values)

	r := row{values: p.values}
	for i := range p.values {
		v, ok, err := r.Next()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, p.values[i], v)
	}
	_, ok, err := r.Next()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCapture(t *testing.T) {
	var c capture
	require.NoError(t, gocql.Unmarshal(native(gocql.TypeInt), []byte{0, 0, 0, 1}, &c))
	require.Equal(t, []byte{0, 0, 0, 1}, c.data)

	require.NoError(t, gocql.Unmarshal(native(gocql.TypeInt), nil, &c))
	require.Nil(t, c.data)
}

func TestTupleInfo(t *testing.T) {
	tuple := gocql.TupleTypeInfo{
		NativeType: native(gocql.TypeTuple),
		Elems:      []gocql.TypeInfo{native(gocql.TypeInt), native(gocql.TypeText), native(gocql.TypeBlob)},
	}
	info, ok := tupleInfo(tuple)
	require.True(t, ok)
	require.Len(t, info.Elems, 3)

	info, ok = tupleInfo(&tuple)
	require.True(t, ok)
	require.Len(t, info.Elems, 3)

	_, ok = tupleInfo(native(gocql.TypeInt))
	require.False(t, ok)
}

func TestSameColumns(t *testing.T) {
	columns := func(elem gocql.Type) []gocql.ColumnInfo {
		return []gocql.ColumnInfo{
			{Keyspace: "ks", Table: "t", Name: "id", TypeInfo: native(gocql.TypeInt)},
			{Keyspace: "ks", Table: "t", Name: "v", TypeInfo: gocql.CollectionType{
				NativeType: native(gocql.TypeList),
				Elem:       native(elem),
			}},
		}
	}
	require.True(t, sameColumns(columns(gocql.TypeText), columns(gocql.TypeText)))
	require.False(t, sameColumns(columns(gocql.TypeText), columns(gocql.TypeBlob)))
	require.False(t, sameColumns(columns(gocql.TypeText), columns(gocql.TypeText)[:1]))

	renamed := columns(gocql.TypeText)
	renamed[0].Name = "pk"
	require.False(t, sameColumns(columns(gocql.TypeText), renamed))
}

func scanAny(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = gomock.Any()
	}

	return args
}

func scanRow(values ...[]byte) func(dest ...any) bool {
	return func(dest ...any) bool {
		for i, v := range values {
			dest[i].(*capture).data = v
		}

		return true
	}
}

func idColumns(typ gocql.Type) []gocql.ColumnInfo {
	return []gocql.ColumnInfo{
		{Keyspace: "ks", Table: "t", Name: "id", TypeInfo: native(typ)},
	}
}

func TestPagerNextRow(t *testing.T) {
	ctx := context.Background()
	t.Run("Rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		iter := NewMockIterator(ctrl)
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeInt)).Times(1)
		iter.EXPECT().WillSwitchPage().Return(false).Times(2)
		iter.EXPECT().Scan(scanAny(1)...).DoAndReturn(scanRow([]byte{0, 0, 0, 1})).Times(1)
		iter.EXPECT().Scan(scanAny(1)...).Return(false).Times(1)
		iter.EXPECT().Close().Return(nil).Times(1)

		p := newPager(iter, nil)
		r, err := p.NextRow(ctx)
		require.NoError(t, err)
		v, ok, err := r.Next()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, rowset.RawValue{Data: []byte{0, 0, 0, 1}}, v)
		_, ok, _ = r.Next()
		require.False(t, ok)

		_, err = p.NextRow(ctx)
		require.ErrorIs(t, err, io.EOF)
	})
	t.Run("FetchError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		iter := NewMockIterator(ctrl)
		errTimeout := errors.New("read timeout")
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeInt)).Times(1)
		iter.EXPECT().WillSwitchPage().Return(true).Times(1)
		iter.EXPECT().Scan(scanAny(1)...).Return(false).Times(1)
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeInt)).Times(1)
		iter.EXPECT().Close().Return(errTimeout).Times(1)

		_, err := newPager(iter, nil).NextRow(ctx)
		require.ErrorIs(t, err, errTimeout)
		require.Equal(t, exception.Execution, exception.KindOf(err))
	})
	t.Run("SchemaChangedOnPageSwitch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		iter := NewMockIterator(ctrl)
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeInt)).Times(1)
		iter.EXPECT().WillSwitchPage().Return(true).Times(1)
		iter.EXPECT().Scan(scanAny(1)...).DoAndReturn(scanRow([]byte("1"))).Times(1)
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeText)).Times(1)

		_, err := newPager(iter, nil).NextRow(ctx)
		require.ErrorIs(t, err, rowset.ErrSchemaChanged)
	})
	t.Run("SchemaChangedOnEmptyPage", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		iter := NewMockIterator(ctrl)
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeInt)).Times(1)
		iter.EXPECT().WillSwitchPage().Return(true).Times(1)
		iter.EXPECT().Scan(scanAny(1)...).Return(false).Times(1)
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeBigInt)).Times(1)

		_, err := newPager(iter, nil).NextRow(ctx)
		require.ErrorIs(t, err, rowset.ErrSchemaChanged)
	})
	t.Run("Canceled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		iter := NewMockIterator(ctrl)
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeInt)).Times(1)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := newPager(iter, nil).NextRow(canceled)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestPagerClose(t *testing.T) {
	t.Run("ReleasesOnce", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		iter := NewMockIterator(ctrl)
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeInt)).Times(1)
		iter.EXPECT().Close().Return(io.EOF).Times(1)

		released := 0
		p := newPager(iter, func() { released++ })
		require.NoError(t, p.Close())
		require.NoError(t, p.Close())
		require.Equal(t, 1, released)
	})
	t.Run("Error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		iter := NewMockIterator(ctrl)
		errTimeout := errors.New("read timeout")
		iter.EXPECT().Columns().Return(idColumns(gocql.TypeInt)).Times(1)
		iter.EXPECT().Close().Return(errTimeout).Times(1)

		released := 0
		p := newPager(iter, func() { released++ })
		require.ErrorIs(t, p.Close(), errTimeout)
		require.Equal(t, 1, released)
	})
}
