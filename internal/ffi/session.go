package ffi

import (
	"context"

	"github.com/cqlbridge/cqlbridge-go/config"
	"github.com/cqlbridge/cqlbridge-go/internal/cql"
	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/handle"
	"github.com/cqlbridge/cqlbridge-go/internal/rowset"
	"github.com/cqlbridge/cqlbridge-go/internal/task"
)

// SessionCreate connects to the cluster at uri in the background. The host
// receives an owning session handle. opts override the bridge config for
// this session only.
func (b *Bridge) SessionCreate(tcb task.Tcb, uri string, opts ...config.Option) {
	cfg := b.config.With(opts...)
	task.Spawn(b.runtime, "session_create", tcb,
		func(ctx context.Context) (Session, error) {
			return b.connect(ctx, uri, cfg)
		},
		func(s Session) uintptr {
			return uintptr(b.sessions.Add(s))
		},
	)
}

func (b *Bridge) SessionFree(h handle.Handle) {
	b.sessions.Free(h)
}

// borrowSession keeps the session alive until tcb is notified
func (b *Bridge) borrowSession(h handle.Handle, tcb task.Tcb) (Session, task.Tcb) {
	b.sessions.Clone(h)
	s := b.sessions.Get(h)
	complete, fail := tcb.Complete, tcb.Fail
	tcb.Complete = func(token, result uintptr) {
		b.sessions.Free(h)
		complete(token, result)
	}
	tcb.Fail = func(token uintptr, ex exception.Exception) {
		b.sessions.Free(h)
		fail(token, ex)
	}

	return s, tcb
}

func (b *Bridge) SessionPrepare(tcb task.Tcb, h handle.Handle, statement string) {
	s, tcb := b.borrowSession(h, tcb)
	task.Spawn(b.runtime, "session_prepare", tcb,
		func(ctx context.Context) (*cql.Prepared, error) {
			return s.Prepare(ctx, statement)
		},
		func(p *cql.Prepared) uintptr {
			return uintptr(b.prepared.Add(p))
		},
	)
}

func (b *Bridge) SessionQuery(tcb task.Tcb, h handle.Handle, statement string) {
	s, tcb := b.borrowSession(h, tcb)
	task.Spawn(b.runtime, "session_query", tcb,
		func(ctx context.Context) (*rowset.RowSet, error) {
			return s.Query(ctx, statement, rowset.WithRunner(b.runtime))
		},
		b.exportRowSet,
	)
}

// SessionQueryBound executes a prepared statement. The statement handle is
// borrowed for the call only.
func (b *Bridge) SessionQueryBound(tcb task.Tcb, h, prepared handle.Handle) {
	p := b.prepared.Get(prepared)
	s, tcb := b.borrowSession(h, tcb)
	task.Spawn(b.runtime, "session_query_bound", tcb,
		func(ctx context.Context) (*rowset.RowSet, error) {
			return s.Execute(ctx, p, rowset.WithRunner(b.runtime))
		},
		b.exportRowSet,
	)
}

// SessionUseKeyspace switches the keyspace, the host receives an empty row
// set on success
func (b *Bridge) SessionUseKeyspace(tcb task.Tcb, h handle.Handle, keyspace string, caseSensitive bool) {
	s, tcb := b.borrowSession(h, tcb)
	task.Spawn(b.runtime, "session_use_keyspace", tcb,
		func(ctx context.Context) (*rowset.RowSet, error) {
			if err := s.UseKeyspace(ctx, keyspace, caseSensitive); err != nil {
				return nil, exception.WithKind(exception.Execution, err)
			}

			return rowset.Empty(), nil
		},
		b.exportRowSet,
	)
}

func (b *Bridge) PreparedStatementFree(h handle.Handle) {
	b.prepared.Free(h)
}
