package metrics

import (
	"context"
	"io"
	"net"
	"strings"

	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
)

func errorBrief(err error) string {
	if err == nil {
		return "OK"
	}
	if xerrors.Is(err, io.EOF) {
		return "io/EOF"
	}
	if netErr := (*net.OpError)(nil); xerrors.As(err, &netErr) {
		var b strings.Builder
		b.WriteString("network")
		if netErr.Op != "" {
			b.WriteByte('/')
			b.WriteString(netErr.Op)
		}
		if netErr.Err != nil {
			b.WriteByte('(')
			b.WriteString(errorBrief(netErr.Err))
			b.WriteByte(')')
		}

		return b.String()
	}
	if xerrors.Is(err, context.DeadlineExceeded) {
		return "context/DeadlineExceeded"
	}
	if xerrors.Is(err, context.Canceled) {
		return "context/Canceled"
	}

	return exception.KindOf(err).String()
}
