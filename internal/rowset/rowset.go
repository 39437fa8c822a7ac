package rowset

import (
	"context"
	"io"

	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/types"
	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
	"github.com/cqlbridge/cqlbridge-go/internal/xsync"
	"github.com/cqlbridge/cqlbridge-go/trace"
)

type State uint8

const (
	NoCursor = State(iota)
	Active
	Exhausted
	Failed
)

func (s State) String() string {
	switch s {
	case NoCursor:
		return "no_cursor"
	case Active:
		return "active"
	case Exhausted:
		return "exhausted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

//go:generate mockgen -destination pager_mock_test.go -package rowset -write_package_comment=false github.com/cqlbridge/cqlbridge-go/internal/rowset Pager,Row

type (
	Column struct {
		Name     string
		Keyspace string
		Table    string
		Type     types.Ref
	}

	// RawValue is a column value as sent by the server. Data is borrowed
	// from the current page and valid until the next row is requested.
	RawValue struct {
		Data []byte
		Null bool
	}

	// Row yields the raw values of one row in column order.
	// ok is false when the row has no more values.
	Row interface {
		Next() (value RawValue, ok bool, err error)
	}

	// Pager is a paged result cursor. NextRow returns io.EOF once the
	// result is exhausted.
	Pager interface {
		Columns() []Column
		NextRow(ctx context.Context) (Row, error)
	}

	// Runner executes a blocking step, usually on a background runtime
	Runner interface {
		Run(ctx context.Context, name string, f func(ctx context.Context) error) error
	}

	MetadataFunc    func(index int, column Column, code types.Code, typ types.Ref, frozen bool) error
	DeserializeFunc func(index int, data []byte) error
)

type inline struct{}

func (inline) Run(ctx context.Context, _ string, f func(ctx context.Context) error) error {
	return f(ctx)
}

type Option func(rs *RowSet)

// WithRunner sets the runner for page fetches, by default they run on the caller goroutine
func WithRunner(r Runner) Option {
	return func(rs *RowSet) {
		if r != nil {
			rs.runner = r
		}
	}
}

func WithTrace(t *trace.Bridge) Option {
	return func(rs *RowSet) {
		if t != nil {
			rs.trace = rs.trace.Compose(t)
		}
	}
}

// RowSet is a synchronous one-row-at-a-time view over a Pager. All methods
// are safe for concurrent use, concurrent NextRow calls are serialized.
type RowSet struct {
	columns []Column
	runner  Runner
	trace   *trace.Bridge

	m      xsync.Mutex
	pager  Pager
	state  State
	err    error
	closed bool
}

// Empty returns a row set without cursor: no columns and no rows
func Empty(opts ...Option) *RowSet {
	return newRowSet(nil, opts...)
}

func New(pager Pager, opts ...Option) *RowSet {
	return newRowSet(pager, opts...)
}

func newRowSet(pager Pager, opts ...Option) *RowSet {
	rs := &RowSet{
		runner: inline{},
		trace:  &trace.Bridge{},
		pager:  pager,
		state:  NoCursor,
	}
	if pager != nil {
		rs.columns = pager.Columns()
		rs.state = Active
	}
	for _, opt := range opts {
		if opt != nil {
			opt(rs)
		}
	}

	return rs
}

func (rs *RowSet) State() State {
	rs.m.Lock()
	defer rs.m.Unlock()

	return rs.state
}

// Columns returns the column specs, nil for a row set without cursor
func (rs *RowSet) Columns() []Column {
	return rs.columns
}

func (rs *RowSet) ColumnsCount() int {
	return len(rs.columns)
}

// FillColumnsMetadata calls fn for every column in declaration order. typ is
// null for scalar codes. An error from fn stops iteration and is returned as is.
func (rs *RowSet) FillColumnsMetadata(fn MetadataFunc) error {
	if rs.pager == nil {
		return xerrors.WithStackTrace(ErrNoCursor)
	}
	for i, col := range rs.columns {
		code := col.Type.Code()
		var typ types.Ref
		if !code.IsScalar() {
			typ = col.Type
		}
		if err := fn(i, col, code, typ, col.Type.Frozen()); err != nil {
			return err
		}
	}

	return nil
}

// NextRow advances the row set by one row and calls fn for every non-null
// value. hasRow is false once the row set is exhausted, which is final.
//
// A failed page fetch moves the row set into the Failed state: the error is
// returned by this and every later call. An error from fn or a short row
// abandons the current row only.
func (rs *RowSet) NextRow(ctx context.Context, fn DeserializeFunc) (hasRow bool, err error) {
	onDone := trace.BridgeOnRowSetNextRow(rs.trace, ctx)
	defer func() {
		onDone(hasRow, err)
	}()

	rs.m.Lock()
	defer rs.m.Unlock()

	switch rs.state {
	case NoCursor, Exhausted:
		return false, nil
	case Failed:
		return false, rs.err
	}

	var row Row
	err = rs.runner.Run(ctx, "next_row", func(ctx context.Context) (err error) {
		row, err = rs.pager.NextRow(ctx)

		return err
	})
	switch {
	case err == nil:
	case xerrors.Is(err, io.EOF):
		rs.state = Exhausted

		return false, nil
	case ctx.Err() != nil && xerrors.Is(err, ctx.Err()):
		// the fetch was never started
		return false, err
	default:
		if xerrors.Is(err, ErrSchemaChanged) {
			err = exception.WithKind(exception.Internal, err)
		}
		rs.state, rs.err = Failed, err

		return false, err
	}

	for i := range rs.columns {
		value, ok, err := row.Next()
		if err != nil {
			return false, xerrors.WithStackTrace(err)
		}
		if !ok {
			return false, xerrors.WithStackTrace(&ColumnCountError{Got: i, Want: len(rs.columns)})
		}
		if value.Null {
			continue
		}
		if err := fn(i, value.Data); err != nil {
			return false, err
		}
	}

	return true, nil
}

// Close releases the cursor. A closed row set behaves as exhausted.
func (rs *RowSet) Close() (err error) {
	rs.m.WithLock(func() {
		if rs.closed {
			return
		}
		rs.closed = true
		if closer, ok := rs.pager.(io.Closer); ok {
			err = closer.Close()
		}
		if rs.state == Active {
			rs.state = Exhausted
		}
	})

	return err
}
