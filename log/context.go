package log

import (
	"context"
)

type (
	ctxLevelKey struct{}
	ctxNamesKey struct{}
)

func WithLevel(ctx context.Context, lvl Level) context.Context {
	return context.WithValue(ctx, ctxLevelKey{}, lvl)
}

func LevelFromContext(ctx context.Context) Level {
	v, _ := ctx.Value(ctxLevelKey{}).(Level)

	return v
}

func WithNames(ctx context.Context, names ...string) context.Context {
	// full slice expression makes append allocate, parents stay untouched
	parent := NamesFromContext(ctx)

	return context.WithValue(ctx, ctxNamesKey{}, append(parent[:len(parent):len(parent)], names...))
}

func NamesFromContext(ctx context.Context) []string {
	v, _ := ctx.Value(ctxNamesKey{}).([]string)
	if v == nil {
		return []string{}
	}

	return v[:len(v):len(v)]
}

func with(ctx context.Context, lvl Level, names ...string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return WithLevel(WithNames(ctx, names...), lvl)
}
