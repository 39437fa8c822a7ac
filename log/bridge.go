package log

import (
	"github.com/cqlbridge/cqlbridge-go/trace"
)

// Bridge makes trace.Bridge with logging events from details
func Bridge(l Logger, d trace.Detailer, opts ...Option) (t trace.Bridge) {
	return internalBridge(l, d, newOptions(opts...))
}

//nolint:funlen
func internalBridge(l Logger, d trace.Detailer, o options) trace.Bridge {
	clock := o.clock
	queryFields := func(query string, fields ...Field) []Field {
		if o.logQuery {
			fields = append(fields, String("query", query))
		}

		return fields
	}

	return trace.Bridge{
		OnSessionConnect: func(info trace.BridgeSessionConnectStartInfo) func(trace.BridgeSessionConnectDoneInfo) {
			if d.Details()&trace.BridgeSessionEvents == 0 {
				return nil
			}
			ctx := with(info.Context, DEBUG, "cqlbridge", "session", "connect")
			hosts := info.Hosts
			l.Log(ctx, "connect starting...", Strings("hosts", hosts))
			start := clock.Now()

			return func(info trace.BridgeSessionConnectDoneInfo) {
				if info.Error == nil {
					l.Log(WithLevel(ctx, INFO), "connected",
						Strings("hosts", hosts),
						Duration("latency", clock.Since(start)),
					)
				} else {
					l.Log(WithLevel(ctx, ERROR), "connect failed",
						Error(info.Error),
						Strings("hosts", hosts),
						Duration("latency", clock.Since(start)),
					)
				}
			}
		},
		OnSessionPrepare: func(info trace.BridgeSessionPrepareStartInfo) func(trace.BridgeSessionPrepareDoneInfo) {
			if d.Details()&trace.BridgeSessionEvents == 0 {
				return nil
			}
			ctx := with(info.Context, TRACE, "cqlbridge", "session", "prepare")
			query := info.Query
			l.Log(ctx, "prepare starting...", queryFields(query)...)
			start := clock.Now()

			return func(info trace.BridgeSessionPrepareDoneInfo) {
				if info.Error == nil {
					l.Log(WithLevel(ctx, DEBUG), "prepared",
						queryFields(query, Duration("latency", clock.Since(start)))...,
					)
				} else {
					l.Log(WithLevel(ctx, WARN), "prepare failed",
						queryFields(query, Error(info.Error), Duration("latency", clock.Since(start)))...,
					)
				}
			}
		},
		OnSessionExecute: func(info trace.BridgeSessionExecuteStartInfo) func(trace.BridgeSessionExecuteDoneInfo) {
			if d.Details()&trace.BridgeSessionEvents == 0 {
				return nil
			}
			ctx := with(info.Context, TRACE, "cqlbridge", "session", "execute")
			query := info.Query
			prepared := info.Prepared
			l.Log(ctx, "execute starting...", queryFields(query, Bool("prepared", prepared))...)
			start := clock.Now()

			return func(info trace.BridgeSessionExecuteDoneInfo) {
				if info.Error == nil {
					l.Log(WithLevel(ctx, DEBUG), "executed",
						queryFields(query,
							Bool("prepared", prepared),
							Int("columns", info.Columns),
							Duration("latency", clock.Since(start)),
						)...,
					)
				} else {
					l.Log(WithLevel(ctx, WARN), "execute failed",
						queryFields(query,
							Error(info.Error),
							Bool("prepared", prepared),
							Duration("latency", clock.Since(start)),
						)...,
					)
				}
			}
		},
		OnSessionUseKeyspace: func(
			info trace.BridgeSessionUseKeyspaceStartInfo,
		) func(
			trace.BridgeSessionUseKeyspaceDoneInfo,
		) {
			if d.Details()&trace.BridgeSessionEvents == 0 {
				return nil
			}
			ctx := with(info.Context, DEBUG, "cqlbridge", "session", "use")
			keyspace := info.Keyspace
			caseSensitive := info.CaseSensitive
			l.Log(ctx, "use keyspace starting...",
				String("keyspace", keyspace),
				Bool("case_sensitive", caseSensitive),
			)

			return func(info trace.BridgeSessionUseKeyspaceDoneInfo) {
				if info.Error == nil {
					l.Log(ctx, "keyspace switched", String("keyspace", keyspace))
				} else {
					l.Log(WithLevel(ctx, WARN), "use keyspace failed",
						Error(info.Error),
						String("keyspace", keyspace),
						Bool("case_sensitive", caseSensitive),
					)
				}
			}
		},
		OnRowSetNextRow: func(info trace.BridgeRowSetNextRowStartInfo) func(trace.BridgeRowSetNextRowDoneInfo) {
			if d.Details()&trace.BridgeRowSetEvents == 0 {
				return nil
			}
			ctx := with(info.Context, TRACE, "cqlbridge", "rowset", "next")

			return func(info trace.BridgeRowSetNextRowDoneInfo) {
				switch {
				case info.Error != nil:
					l.Log(WithLevel(ctx, WARN), "next row failed", Error(info.Error))
				case !info.HasRow:
					l.Log(WithLevel(ctx, DEBUG), "row set exhausted")
				default:
					l.Log(ctx, "next row")
				}
			}
		},
		OnTask: func(info trace.BridgeTaskStartInfo) func(trace.BridgeTaskDoneInfo) {
			if d.Details()&trace.BridgeTaskEvents == 0 {
				return nil
			}
			ctx := with(info.Context, TRACE, "cqlbridge", "task")
			id := info.ID.String()
			name := info.Name
			blocking := info.Blocking
			l.Log(ctx, "task starting...",
				String("id", id),
				String("name", name),
				Bool("blocking", blocking),
			)
			start := clock.Now()

			return func(info trace.BridgeTaskDoneInfo) {
				if info.Error == nil {
					l.Log(ctx, "task done",
						String("id", id),
						String("name", name),
						Duration("latency", clock.Since(start)),
					)
				} else {
					l.Log(WithLevel(ctx, WARN), "task failed",
						Error(info.Error),
						String("id", id),
						String("name", name),
						Duration("latency", clock.Since(start)),
					)
				}
			}
		},
	}
}
