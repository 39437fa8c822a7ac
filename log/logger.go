package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
)

const dateLayout = "2006-01-02 15:04:05.000"

type Logger interface {
	// Log writes msg at the level found in ctx (see WithLevel).
	// Implementations must not retain fields after Log returns.
	Log(ctx context.Context, msg string, fields ...Field)
}

type options struct {
	coloring bool
	logQuery bool
	minLevel Level
	clock    clockwork.Clock
}

type Option func(o *options)

func WithColoring() Option {
	return func(o *options) {
		o.coloring = true
	}
}

func WithMinLevel(level Level) Option {
	return func(o *options) {
		o.minLevel = level
	}
}

// WithLogQuery adds statement text to session records
func WithLogQuery() Option {
	return func(o *options) {
		o.logQuery = true
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{
		minLevel: INFO,
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

var _ Logger = (*defaultLogger)(nil)

// Default writes one line per record to w
func Default(w io.Writer, opts ...Option) *defaultLogger {
	return &defaultLogger{
		opts: newOptions(opts...),
		w:    w,
	}
}

type defaultLogger struct {
	opts options
	mu   sync.Mutex
	w    io.Writer
}

func (l *defaultLogger) format(namespace []string, msg string, lvl Level) string {
	var b strings.Builder
	if l.opts.coloring {
		b.WriteString(lvl.Color())
	}
	b.WriteString(l.opts.clock.Now().Format(dateLayout))
	b.WriteByte(' ')
	b.WriteString(lvl.String())
	b.WriteString(" '")
	b.WriteString(strings.Join(namespace, "."))
	b.WriteString("' => ")
	b.WriteString(msg)
	if l.opts.coloring {
		b.WriteString(colorReset)
	}

	return b.String()
}

func appendFields(msg string, fields ...Field) string {
	if len(fields) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	b.WriteString(" {")
	for i := range fields {
		if i != 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `%q:%q`, fields[i].Key(), fields[i].String())
	}
	b.WriteByte('}')

	return b.String()
}

func (l *defaultLogger) Log(ctx context.Context, msg string, fields ...Field) {
	lvl := LevelFromContext(ctx)
	if lvl < l.opts.minLevel || lvl >= QUIET {
		return
	}

	line := l.format(NamesFromContext(ctx), appendFields(msg, fields...), lvl) + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, line)
}
