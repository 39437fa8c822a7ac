package background

import (
	"context"
	"errors"
	"runtime/pprof"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
	"github.com/cqlbridge/cqlbridge-go/internal/xsync"
)

var (
	ErrAlreadyClosed       = errors.New("cqlbridge: background worker already closed")
	errClosedWithNilReason = errors.New("cqlbridge: background worker closed with nil reason")
)

// A Worker runs named tasks on their own goroutines, at most limit of them
// at a time. A Worker must not be copied after first use
type Worker struct {
	ctx      context.Context //nolint:containedctx
	name     string
	workers  sync.WaitGroup
	onceInit sync.Once

	tasksCompleted chan struct{}

	m xsync.Mutex

	tasks chan backgroundTask
	limit *semaphore.Weighted

	closed      bool
	stop        context.CancelFunc
	closeReason error
}

type CallbackFunc func(ctx context.Context)

type Option func(w *Worker)

// WithLimit bounds the number of concurrently running tasks
func WithLimit(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.limit = semaphore.NewWeighted(int64(n))
		}
	}
}

func NewWorker(parent context.Context, name string, opts ...Option) *Worker {
	w := Worker{name: name}
	w.ctx, w.stop = context.WithCancel(parent)
	for _, opt := range opts {
		if opt != nil {
			opt(&w)
		}
	}

	return &w
}

func (b *Worker) Context() context.Context {
	b.init()

	return b.ctx
}

// Start schedules f. It fails with ErrAlreadyClosed once Close was called.
func (b *Worker) Start(name string, f CallbackFunc) error {
	b.init()

	var err error
	b.m.WithLock(func() {
		if b.closed {
			err = xerrors.WithStackTrace(ErrAlreadyClosed)

			return
		}

		b.tasks <- backgroundTask{
			callback: f,
			name:     name,
		}
	})

	return err
}

func (b *Worker) Done() <-chan struct{} {
	b.init()

	return b.ctx.Done()
}

// Close stops accepting tasks, cancels the worker context and waits for
// running tasks or ctx.
func (b *Worker) Close(ctx context.Context, err error) error {
	b.init()

	var resErr error
	b.m.WithLock(func() {
		if b.closed {
			resErr = xerrors.WithStackTrace(ErrAlreadyClosed)

			return
		}

		b.closed = true

		close(b.tasks)
		b.closeReason = err
		if b.closeReason == nil {
			b.closeReason = errClosedWithNilReason
		}

		b.stop()
	})
	if resErr != nil {
		return resErr
	}

	<-b.tasksCompleted

	bgCompleted := make(chan struct{})

	go func() {
		b.workers.Wait()
		close(bgCompleted)
	}()

	select {
	case <-bgCompleted:
		return nil
	case <-ctx.Done():
		return xerrors.WithStackTrace(ctx.Err())
	}
}

func (b *Worker) CloseReason() error {
	b.m.Lock()
	defer b.m.Unlock()

	return b.closeReason
}

func (b *Worker) init() {
	b.onceInit.Do(func() {
		if b.ctx == nil {
			b.ctx, b.stop = context.WithCancel(context.Background())
		}
		b.tasks = make(chan backgroundTask)
		b.tasksCompleted = make(chan struct{})
		go b.starterLoop()
	})
}

func (b *Worker) starterLoop() {
	defer close(b.tasksCompleted)

	for bgTask := range b.tasks {
		b.workers.Add(1)

		go func(task backgroundTask) {
			defer b.workers.Done()

			// accepted tasks run to completion even after Close
			if b.limit != nil {
				_ = b.limit.Acquire(context.Background(), 1)
				defer b.limit.Release(1)
			}

			pprof.Do(b.ctx, pprof.Labels("background", b.name, "task", task.name), task.callback)
		}(bgTask)
	}
}

type backgroundTask struct {
	callback CallbackFunc
	name     string
}
