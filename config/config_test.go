package config

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/cqlbridge/cqlbridge-go/trace"
)

func TestDefaults(t *testing.T) {
	c := New()
	require.Equal(t, DefaultPort, c.Port())
	require.Equal(t, DefaultPageSize, c.PageSize())
	require.Equal(t, DefaultConsistency, c.Consistency())
	require.Equal(t, DefaultConnectTimeout, c.ConnectTimeout())
	require.Equal(t, DefaultRequestTimeout, c.RequestTimeout())
	require.Equal(t, runtime.GOMAXPROCS(0), c.Workers())
	require.Equal(t, LoadBalancing{}, c.LoadBalancing())
	require.Empty(t, c.Keyspace())
	require.NotNil(t, c.Trace())
	require.NotNil(t, c.Clock())
}

func TestOptions(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New(
		WithLoadBalancing(LoadBalancing{TokenAware: true, DCAware: true, LocalDC: "dc1"}),
		WithPort(19042),
		WithKeyspace("ks"),
		WithConsistency("QUORUM"),
		WithPageSize(100),
		WithWorkers(3),
		WithConnectTimeout(time.Second),
		WithRequestTimeout(2*time.Second),
		WithClock(clock),
		nil,
	)
	require.Equal(t, LoadBalancing{TokenAware: true, DCAware: true, LocalDC: "dc1"}, c.LoadBalancing())
	require.Equal(t, 19042, c.Port())
	require.Equal(t, "ks", c.Keyspace())
	require.Equal(t, "QUORUM", c.Consistency())
	require.Equal(t, 100, c.PageSize())
	require.Equal(t, 3, c.Workers())
	require.Equal(t, time.Second, c.ConnectTimeout())
	require.Equal(t, 2*time.Second, c.RequestTimeout())
	require.Equal(t, clock, c.Clock())
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	c := New(
		WithPort(-1),
		WithConsistency(""),
		WithPageSize(0),
		WithWorkers(-2),
		WithConnectTimeout(0),
		WithRequestTimeout(-time.Second),
		WithClock(nil),
		WithTrace(nil),
	)
	require.Equal(t, DefaultPort, c.Port())
	require.Equal(t, DefaultConsistency, c.Consistency())
	require.Equal(t, DefaultPageSize, c.PageSize())
	require.Equal(t, runtime.GOMAXPROCS(0), c.Workers())
	require.Equal(t, DefaultConnectTimeout, c.ConnectTimeout())
	require.Equal(t, DefaultRequestTimeout, c.RequestTimeout())
	require.NotNil(t, c.Clock())
}

func TestWithTraceComposes(t *testing.T) {
	var calls []string
	hook := func(name string) *trace.Bridge {
		return &trace.Bridge{
			OnSessionPrepare: func(trace.BridgeSessionPrepareStartInfo) func(trace.BridgeSessionPrepareDoneInfo) {
				calls = append(calls, name)

				return nil
			},
		}
	}
	c := New(WithTrace(hook("first")), WithTrace(hook("second")))
	trace.BridgeOnSessionPrepare(c.Trace(), context.Background(), "SELECT 1")(nil)
	require.Equal(t, []string{"first", "second"}, calls)
}

func TestWith(t *testing.T) {
	base := New(WithKeyspace("base"), WithPageSize(10))
	derived := base.With(
		WithKeyspace("derived"),
		WithLoadBalancing(LoadBalancing{DCAware: true, LocalDC: "dc2"}),
	)

	require.Equal(t, "base", base.Keyspace())
	require.Equal(t, LoadBalancing{}, base.LoadBalancing())
	require.Equal(t, "derived", derived.Keyspace())
	require.Equal(t, 10, derived.PageSize())
	require.Equal(t, "dc2", derived.LoadBalancing().LocalDC)
}
