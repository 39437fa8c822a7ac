package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cqlbridge/cqlbridge-go/internal/background"
	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
	"github.com/cqlbridge/cqlbridge-go/trace"
)

var errClosed = errors.New("cqlbridge: runtime closed")

// Tcb is the completion token of a fire-and-notify task. Exactly one of
// Complete or Fail is called, from a runtime goroutine.
type Tcb struct {
	Token        uintptr
	Complete     func(token uintptr, result uintptr)
	Fail         func(token uintptr, ex exception.Exception)
	Constructors *exception.Constructors
}

func (tcb Tcb) fail(err error) {
	tcb.Fail(tcb.Token, exception.From(err, tcb.Constructors))
}

// Runtime executes driver work in background goroutines. Spawned tasks are
// bounded by the worker limit, blocking work runs on its caller.
type Runtime struct {
	worker *background.Worker
	trace  *trace.Bridge
}

type options struct {
	workers int
	trace   *trace.Bridge
}

type Option func(o *options)

// WithWorkers bounds the number of tasks running at the same time
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func WithTrace(t *trace.Bridge) Option {
	return func(o *options) {
		if t != nil {
			o.trace = o.trace.Compose(t)
		}
	}
}

func NewRuntime(ctx context.Context, opts ...Option) *Runtime {
	o := options{trace: &trace.Bridge{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &Runtime{
		worker: background.NewWorker(ctx, "cqlbridge", background.WithLimit(o.workers)),
		trace:  o.trace,
	}
}

func (rt *Runtime) Close(ctx context.Context) error {
	return rt.worker.Close(ctx, errClosed)
}

func (rt *Runtime) closeReason() error {
	if err := rt.worker.CloseReason(); err != nil {
		return err
	}

	return rt.worker.Context().Err()
}

// Run is BlockOn for work without a result
func (rt *Runtime) Run(ctx context.Context, name string, work func(ctx context.Context) error) error {
	_, err := BlockOn(ctx, rt, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	})

	return err
}

// Spawn schedules work and returns immediately. On success the result is
// turned into a host handle with export and passed to tcb.Complete,
// otherwise tcb.Fail receives the marshalled error. A panic in work is
// reported as an internal error.
func Spawn[T any](
	rt *Runtime,
	name string,
	tcb Tcb,
	work func(ctx context.Context) (T, error),
	export func(T) uintptr,
) {
	id := uuid.New()
	onDone := trace.BridgeOnTask(rt.trace, rt.worker.Context(), id, name, false)

	err := rt.worker.Start(name, func(ctx context.Context) {
		result, err := runRecovered(ctx, name, work)
		onDone(err)
		if err != nil {
			tcb.fail(err)

			return
		}
		tcb.Complete(tcb.Token, export(result))
	})
	if err != nil {
		onDone(err)
		tcb.fail(err)
	}
}

// BlockOn runs work to completion on the calling goroutine. It does not
// take a worker slot, so it is safe to call from a completion callback.
// There is no cancellation once work started, ctx only guards the start.
// A panic in work is raised again on the caller.
func BlockOn[T any](ctx context.Context, rt *Runtime, name string, work func(ctx context.Context) (T, error)) (_ T, finalErr error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, xerrors.WithStackTrace(err)
	}
	select {
	case <-rt.worker.Done():
		return zero, xerrors.WithStackTrace(rt.closeReason())
	default:
	}

	onDone := trace.BridgeOnTask(rt.trace, ctx, uuid.New(), name, true)
	defer func() {
		if r := recover(); r != nil {
			onDone(fmt.Errorf("panic: %v", r))
			panic(r)
		}
		onDone(finalErr)
	}()

	// work keeps the caller context so values like trace ids survive
	return work(context.WithoutCancel(ctx))
}

func runRecovered[T any](ctx context.Context, name string, work func(ctx context.Context) (T, error)) (_ T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = xerrors.WithStackTrace(fmt.Errorf("cqlbridge: task %q panicked: %v", name, r))
		}
	}()

	return work(ctx)
}
