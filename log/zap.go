package log

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

var _ Logger = zapLogger{}

type zapLogger struct {
	l *zap.Logger
}

// Zap adapts l. Context names become the zap logger name.
func Zap(l *zap.Logger) Logger {
	return zapLogger{l: l}
}

func (z zapLogger) Log(ctx context.Context, msg string, fields ...Field) {
	lvl := LevelFromContext(ctx)
	if lvl >= QUIET {
		return
	}
	l := z.l
	if names := NamesFromContext(ctx); len(names) > 0 {
		l = l.Named(strings.Join(names, "."))
	}
	if ce := l.Check(lvl.zap(), msg); ce != nil {
		ce.Write(zapFields(fields)...)
	}
}

func zapFields(fields []Field) []zap.Field {
	zf := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch f.Type() {
		case IntType:
			zf = append(zf, zap.Int(f.Key(), f.IntValue()))
		case Int64Type:
			zf = append(zf, zap.Int64(f.Key(), f.Int64Value()))
		case StringType:
			zf = append(zf, zap.String(f.Key(), f.StringValue()))
		case BoolType:
			zf = append(zf, zap.Bool(f.Key(), f.BoolValue()))
		case DurationType:
			zf = append(zf, zap.Duration(f.Key(), f.DurationValue()))
		case StringsType:
			zf = append(zf, zap.Strings(f.Key(), f.StringsValue()))
		case ErrorType:
			zf = append(zf, zap.NamedError(f.Key(), f.ErrorValue()))
		default:
			zf = append(zf, zap.Any(f.Key(), f.AnyValue()))
		}
	}

	return zf
}

// NewZap builds a production zap logger enabled from lvl. QUIET gives a
// no-op logger.
func NewZap(lvl Level, opts ...zap.Option) (*zap.Logger, error) {
	if lvl >= QUIET {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl.zap())

	return cfg.Build(opts...)
}
