package ffi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
	"github.com/cqlbridge/cqlbridge-go/log"
)

// Metrics returns the gatherer of the bridge metrics
func (b *Bridge) Metrics() prometheus.Gatherer {
	return b.registry
}

// MetricsServe exposes the bridge metrics on addr at /metrics until the
// bridge is closed. The listener address is returned.
func (b *Bridge) MetricsServe(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", xerrors.WithStackTrace(err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(b.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	b.m.WithLock(func() {
		b.servers = append(b.servers, srv)
	})
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ctx := log.WithNames(log.WithLevel(context.Background(), log.ERROR), "cqlbridge", "metrics")
			b.logger.Log(ctx, "metrics server stopped", log.Error(err), log.String("addr", ln.Addr().String()))
		}
	}()

	return ln.Addr().String(), nil
}

func (b *Bridge) shutdownServers(ctx context.Context) error {
	var servers []*http.Server
	b.m.WithLock(func() {
		servers, b.servers = b.servers, nil
	})
	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return xerrors.Join(errs...)
}
