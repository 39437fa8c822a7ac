package ffi

import (
	"context"
	"sync/atomic"

	"github.com/cqlbridge/cqlbridge-go/log"
)

var _ log.Logger = (*hostLogger)(nil)

// hostLogger forwards to the logger installed by LoggingInit, it drops
// messages until then
type hostLogger struct {
	l atomic.Pointer[log.Logger]
}

func (h *hostLogger) Log(ctx context.Context, msg string, fields ...log.Field) {
	if l := h.l.Load(); l != nil {
		(*l).Log(ctx, msg, fields...)
	}
}

func (h *hostLogger) set(l log.Logger) {
	h.l.Store(&l)
}

// LoggingInit installs a zap logger writing JSON to stderr from level on.
// Unknown level names turn logging off.
func (b *Bridge) LoggingInit(level string) error {
	z, err := log.NewZap(log.FromString(level))
	if err != nil {
		return err
	}
	b.logger.set(log.Zap(z))

	return nil
}
