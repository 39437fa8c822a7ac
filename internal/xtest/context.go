package xtest

import (
	"context"
	"runtime/pprof"
	"testing"
)

func Context(t testing.TB) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = pprof.WithLabels(ctx, pprof.Labels("test", t.Name()))
	pprof.SetGoroutineLabels(ctx)

	t.Cleanup(func() {
		pprof.SetGoroutineLabels(ctx)
		cancel()
	})

	return ctx
}
