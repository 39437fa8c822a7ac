package ffi

import (
	"context"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cqlbridge/cqlbridge-go/config"
	"github.com/cqlbridge/cqlbridge-go/internal/cql"
	"github.com/cqlbridge/cqlbridge-go/internal/handle"
	"github.com/cqlbridge/cqlbridge-go/internal/rowset"
	"github.com/cqlbridge/cqlbridge-go/internal/task"
	"github.com/cqlbridge/cqlbridge-go/internal/types"
	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
	"github.com/cqlbridge/cqlbridge-go/internal/xsync"
	"github.com/cqlbridge/cqlbridge-go/metrics"
	"github.com/cqlbridge/cqlbridge-go/trace"
)

//go:generate mockgen -destination session_mock_test.go -package ffi -write_package_comment=false github.com/cqlbridge/cqlbridge-go/internal/ffi Session

type (
	// Session is a connected driver session
	Session interface {
		Prepare(ctx context.Context, query string) (*cql.Prepared, error)
		Query(ctx context.Context, query string, opts ...rowset.Option) (*rowset.RowSet, error)
		Execute(ctx context.Context, prepared *cql.Prepared, opts ...rowset.Option) (*rowset.RowSet, error)
		UseKeyspace(ctx context.Context, keyspace string, caseSensitive bool) error
		Close()
	}

	Connector func(ctx context.Context, uri string, cfg *config.Config) (Session, error)
)

func connect(ctx context.Context, uri string, cfg *config.Config) (Session, error) {
	s, err := cql.Connect(ctx, uri, cfg)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// rowSet is a row set handed to the host together with the type tree its
// type handles point into
type rowSet struct {
	*rowset.RowSet

	tree *types.Tree
}

// Bridge owns everything the host holds handles to
type Bridge struct {
	config   *config.Config
	connect  Connector
	runtime  *task.Runtime
	logger   *hostLogger
	registry *prometheus.Registry

	sessions *handle.Table[Session]
	prepared *handle.Table[*cql.Prepared]
	rowSets  *handle.Table[*rowSet]
	types    *handle.Arenas

	m       xsync.Mutex
	servers []*http.Server
}

type Option func(b *Bridge)

func WithConfig(cfg *config.Config) Option {
	return func(b *Bridge) {
		if cfg != nil {
			b.config = cfg
		}
	}
}

// WithConnector replaces the gocql connector
func WithConnector(c Connector) Option {
	return func(b *Bridge) {
		if c != nil {
			b.connect = c
		}
	}
}

func New(ctx context.Context, opts ...Option) *Bridge {
	b := &Bridge{
		config:   config.New(),
		connect:  connect,
		logger:   &hostLogger{},
		registry: prometheus.NewRegistry(),
		prepared: handle.NewTable[*cql.Prepared]("prepared statement", nil),
		types:    handle.NewArenas(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	m := metrics.Bridge(metrics.NewConfig(metrics.Prometheus(b.registry)))
	b.config = b.config.With(
		config.WithLogger(b.logger, trace.DetailsAll),
		config.WithTrace(&m),
	)
	b.runtime = task.NewRuntime(ctx,
		task.WithWorkers(b.config.Workers()),
		task.WithTrace(b.config.Trace()),
	)
	b.sessions = handle.NewTable("session", func(s Session) {
		s.Close()
	})
	b.rowSets = handle.NewTable("row set", func(rs *rowSet) {
		_ = rs.Close()
		if rs.tree != nil {
			b.types.Release(rs.tree)
		}
	})

	return b
}

// Close stops the metrics servers and the runtime, waiting for scheduled tasks
func (b *Bridge) Close(ctx context.Context) error {
	return xerrors.Join(
		b.shutdownServers(ctx),
		b.runtime.Close(ctx),
	)
}

var (
	defaultBridge *Bridge
	defaultOnce   sync.Once
)

// Default returns the process wide bridge served by the exported functions
func Default() *Bridge {
	defaultOnce.Do(func() {
		defaultBridge = New(context.Background())
	})

	return defaultBridge
}
