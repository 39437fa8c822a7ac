package trace

import (
	"context"

	"github.com/google/uuid"
)

type (
	// Bridge is a set of hooks around the operations served to the host.
	// Nil hooks are skipped, a hook may return a nil done-callback.
	Bridge struct {
		OnSessionConnect     func(BridgeSessionConnectStartInfo) func(BridgeSessionConnectDoneInfo)
		OnSessionPrepare     func(BridgeSessionPrepareStartInfo) func(BridgeSessionPrepareDoneInfo)
		OnSessionExecute     func(BridgeSessionExecuteStartInfo) func(BridgeSessionExecuteDoneInfo)
		OnSessionUseKeyspace func(BridgeSessionUseKeyspaceStartInfo) func(BridgeSessionUseKeyspaceDoneInfo)
		OnRowSetNextRow      func(BridgeRowSetNextRowStartInfo) func(BridgeRowSetNextRowDoneInfo)
		OnTask               func(BridgeTaskStartInfo) func(BridgeTaskDoneInfo)
	}
	BridgeSessionConnectStartInfo struct {
		Context context.Context
		Hosts   []string
	}
	BridgeSessionConnectDoneInfo struct {
		Error error
	}
	BridgeSessionPrepareStartInfo struct {
		Context context.Context
		Query   string
	}
	BridgeSessionPrepareDoneInfo struct {
		Error error
	}
	BridgeSessionExecuteStartInfo struct {
		Context  context.Context
		Query    string
		Prepared bool
	}
	BridgeSessionExecuteDoneInfo struct {
		Columns int
		Error   error
	}
	BridgeSessionUseKeyspaceStartInfo struct {
		Context       context.Context
		Keyspace      string
		CaseSensitive bool
	}
	BridgeSessionUseKeyspaceDoneInfo struct {
		Error error
	}
	BridgeRowSetNextRowStartInfo struct {
		Context context.Context
	}
	BridgeRowSetNextRowDoneInfo struct {
		HasRow bool
		Error  error
	}
	BridgeTaskStartInfo struct {
		Context context.Context
		ID      uuid.UUID
		Name    string
		// Blocking is true when the caller waits for the task
		Blocking bool
	}
	BridgeTaskDoneInfo struct {
		Error error
	}
)

// Compose returns a Bridge calling the hooks of t and then the hooks of x
func (t *Bridge) Compose(x *Bridge) *Bridge {
	var ret Bridge
	ret.OnSessionConnect = compose(t.OnSessionConnect, x.OnSessionConnect)
	ret.OnSessionPrepare = compose(t.OnSessionPrepare, x.OnSessionPrepare)
	ret.OnSessionExecute = compose(t.OnSessionExecute, x.OnSessionExecute)
	ret.OnSessionUseKeyspace = compose(t.OnSessionUseKeyspace, x.OnSessionUseKeyspace)
	ret.OnRowSetNextRow = compose(t.OnRowSetNextRow, x.OnRowSetNextRow)
	ret.OnTask = compose(t.OnTask, x.OnTask)

	return &ret
}

func compose[S, D any](h1, h2 func(S) func(D)) func(S) func(D) {
	switch {
	case h1 == nil:
		return h2
	case h2 == nil:
		return h1
	}

	return func(s S) func(D) {
		r1, r2 := h1(s), h2(s)

		return func(d D) {
			if r1 != nil {
				r1(d)
			}
			if r2 != nil {
				r2(d)
			}
		}
	}
}

func start[S, D any](h func(S) func(D), s S) func(D) {
	if h == nil {
		return func(D) {}
	}
	if done := h(s); done != nil {
		return done
	}

	return func(D) {}
}

func BridgeOnSessionConnect(t *Bridge, ctx context.Context, hosts []string) func(error) {
	done := start(t.OnSessionConnect, BridgeSessionConnectStartInfo{Context: ctx, Hosts: hosts})

	return func(err error) {
		done(BridgeSessionConnectDoneInfo{Error: err})
	}
}

func BridgeOnSessionPrepare(t *Bridge, ctx context.Context, query string) func(error) {
	done := start(t.OnSessionPrepare, BridgeSessionPrepareStartInfo{Context: ctx, Query: query})

	return func(err error) {
		done(BridgeSessionPrepareDoneInfo{Error: err})
	}
}

func BridgeOnSessionExecute(t *Bridge, ctx context.Context, query string, prepared bool) func(columns int, err error) {
	done := start(t.OnSessionExecute, BridgeSessionExecuteStartInfo{
		Context:  ctx,
		Query:    query,
		Prepared: prepared,
	})

	return func(columns int, err error) {
		done(BridgeSessionExecuteDoneInfo{Columns: columns, Error: err})
	}
}

func BridgeOnSessionUseKeyspace(t *Bridge, ctx context.Context, keyspace string, caseSensitive bool) func(error) {
	done := start(t.OnSessionUseKeyspace, BridgeSessionUseKeyspaceStartInfo{
		Context:       ctx,
		Keyspace:      keyspace,
		CaseSensitive: caseSensitive,
	})

	return func(err error) {
		done(BridgeSessionUseKeyspaceDoneInfo{Error: err})
	}
}

func BridgeOnRowSetNextRow(t *Bridge, ctx context.Context) func(hasRow bool, err error) {
	done := start(t.OnRowSetNextRow, BridgeRowSetNextRowStartInfo{Context: ctx})

	return func(hasRow bool, err error) {
		done(BridgeRowSetNextRowDoneInfo{HasRow: hasRow, Error: err})
	}
}

func BridgeOnTask(t *Bridge, ctx context.Context, id uuid.UUID, name string, blocking bool) func(error) {
	done := start(t.OnTask, BridgeTaskStartInfo{
		Context:  ctx,
		ID:       id,
		Name:     name,
		Blocking: blocking,
	})

	return func(err error) {
		done(BridgeTaskDoneInfo{Error: err})
	}
}
