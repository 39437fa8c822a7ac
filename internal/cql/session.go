package cql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gocql/gocql"

	"github.com/cqlbridge/cqlbridge-go/config"
	"github.com/cqlbridge/cqlbridge-go/internal/exception"
	"github.com/cqlbridge/cqlbridge-go/internal/rowset"
	"github.com/cqlbridge/cqlbridge-go/internal/xerrors"
	"github.com/cqlbridge/cqlbridge-go/internal/xsync"
	"github.com/cqlbridge/cqlbridge-go/trace"
)

var (
	errNoHosts  = errors.New("cqlbridge: no contact points in uri")
	errPrepared = errors.New("cqlbridge: statement prepared")
	errClosed   = errors.New("cqlbridge: session closed")
)

// Session is a connected cluster session. The underlying driver session is
// replaced when the keyspace is switched, row sets keep the one they were
// opened on until they are closed.
type Session struct {
	cluster gocql.ClusterConfig
	lb      config.LoadBalancing
	trace   *trace.Bridge

	m        xsync.RWMutex
	conn     *conn
	keyspace string
}

// Prepared is a statement prepared by the server. Statements the driver
// does not prepare (schema changes and other non-DML) keep only the text.
type Prepared struct {
	query   string
	columns []gocql.ColumnInfo
}

// NewPrepared makes a statement with already known result columns
func NewPrepared(query string, columns []gocql.ColumnInfo) *Prepared {
	return &Prepared{query: query, columns: columns}
}

func (p *Prepared) Query() string {
	return p.query
}

// Columns returns the result columns reported by the server at prepare time
func (p *Prepared) Columns() []gocql.ColumnInfo {
	return p.columns
}

// ParseHosts splits a comma separated list of contact points
func ParseHosts(uri string) []string {
	var hosts []string
	for _, h := range strings.Split(uri, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}

	return hosts
}

func hostPolicy(lb config.LoadBalancing) gocql.HostSelectionPolicy {
	var policy gocql.HostSelectionPolicy
	if lb.DCAware {
		policy = gocql.DCAwareRoundRobinPolicy(lb.LocalDC)
	} else {
		policy = gocql.RoundRobinHostPolicy()
	}
	if lb.TokenAware {
		policy = gocql.TokenAwareHostPolicy(policy)
	}

	return policy
}

// NewCluster makes driver settings for hosts from cfg
func NewCluster(hosts []string, cfg *config.Config) (*gocql.ClusterConfig, error) {
	consistency, err := gocql.ParseConsistencyWrapper(cfg.Consistency())
	if err != nil {
		return nil, xerrors.WithStackTrace(err)
	}
	cluster := gocql.NewCluster(hosts...)
	cluster.Port = cfg.Port()
	cluster.Keyspace = cfg.Keyspace()
	cluster.Consistency = consistency
	cluster.PageSize = cfg.PageSize()
	cluster.ConnectTimeout = cfg.ConnectTimeout()
	cluster.Timeout = cfg.RequestTimeout()
	cluster.PoolConfig.HostSelectionPolicy = hostPolicy(cfg.LoadBalancing())

	return cluster, nil
}

// Connect creates a session to the cluster listed in uri
func Connect(ctx context.Context, uri string, cfg *config.Config) (_ *Session, finalErr error) {
	hosts := ParseHosts(uri)
	onDone := trace.BridgeOnSessionConnect(cfg.Trace(), ctx, hosts)
	defer func() {
		onDone(finalErr)
	}()

	if len(hosts) == 0 {
		return nil, xerrors.WithStackTrace(exception.WithKind(exception.Connection, errNoHosts))
	}
	if err := ctx.Err(); err != nil {
		return nil, xerrors.WithStackTrace(exception.WithKind(exception.Connection, err))
	}
	cluster, err := NewCluster(hosts, cfg)
	if err != nil {
		return nil, exception.WithKind(exception.Connection, err)
	}
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, xerrors.WithStackTrace(exception.WithKind(exception.Connection, err))
	}

	return &Session{
		cluster:  *cluster,
		lb:       cfg.LoadBalancing(),
		trace:    cfg.Trace(),
		conn:     newConn(session),
		keyspace: cluster.Keyspace,
	}, nil
}

// current acquires the driver session, the caller must release it
func (s *Session) current() (*conn, error) {
	return xsync.WithLock(s.m.RLocker(), func() (*conn, error) {
		if s.conn == nil || !s.conn.acquire() {
			return nil, xerrors.WithStackTrace(errClosed)
		}

		return s.conn, nil
	})
}

// Keyspace returns the keyspace statements run against
func (s *Session) Keyspace() (keyspace string) {
	s.m.WithRLock(func() {
		keyspace = s.keyspace
	})

	return keyspace
}

// preparable mirrors the statements the driver sends through the prepare path
func preparable(query string) bool {
	stmt := strings.TrimFunc(query, func(r rune) bool {
		return unicode.IsSpace(r) || r == ';'
	})
	fields := strings.Fields(stmt)
	if len(fields) < 2 {
		return false
	}
	kind := strings.ToLower(fields[0])
	if kind == "begin" {
		kind = strings.ToLower(fields[len(fields)-1])
	}
	switch kind {
	case "select", "insert", "update", "delete", "batch":
		return true
	default:
		return false
	}
}

// Prepare prepares query on the server without executing it
func (s *Session) Prepare(ctx context.Context, query string) (_ *Prepared, finalErr error) {
	onDone := trace.BridgeOnSessionPrepare(s.trace, ctx, query)
	defer func() {
		onDone(finalErr)
	}()

	c, err := s.current()
	if err != nil {
		return nil, exception.WithKind(exception.Prepare, err)
	}
	defer c.release()

	prepared := &Prepared{query: query}
	if !preparable(query) {
		return prepared, nil
	}

	q := c.session.Bind(query, func(info *gocql.QueryInfo) ([]interface{}, error) {
		prepared.columns = info.Rval

		return nil, errPrepared
	}).WithContext(ctx).RetryPolicy(nil)
	defer q.Release()

	err = q.Iter().Close()
	if err != nil && !errors.Is(err, errPrepared) {
		return nil, xerrors.WithStackTrace(exception.WithKind(exception.Prepare, err))
	}

	return prepared, nil
}

// Query executes an unprepared statement
func (s *Session) Query(ctx context.Context, query string, opts ...rowset.Option) (*rowset.RowSet, error) {
	return s.execute(ctx, query, false, opts)
}

// Execute executes a prepared statement without bound values
func (s *Session) Execute(ctx context.Context, prepared *Prepared, opts ...rowset.Option) (*rowset.RowSet, error) {
	return s.execute(ctx, prepared.query, true, opts)
}

func (s *Session) execute(
	ctx context.Context, query string, prepared bool, opts []rowset.Option,
) (_ *rowset.RowSet, finalErr error) {
	columns := 0
	onDone := trace.BridgeOnSessionExecute(s.trace, ctx, query, prepared)
	defer func() {
		onDone(columns, finalErr)
	}()

	c, err := s.current()
	if err != nil {
		return nil, exception.WithKind(exception.Execution, err)
	}

	opts = append([]rowset.Option{rowset.WithTrace(s.trace)}, opts...)
	iter := c.session.Query(query).WithContext(ctx).Iter()
	// the pager owns c from here on
	p := newPager(iter, c.release)
	if len(p.Columns()) == 0 {
		if err := p.Close(); err != nil {
			return nil, exception.WithKind(exception.Execution, err)
		}

		return rowset.Empty(opts...), nil
	}
	columns = len(p.Columns())

	return rowset.New(p, opts...), nil
}

// Close detaches the session. The driver session is shut down once the
// row sets opened on it are closed too.
func (s *Session) Close() {
	var c *conn
	s.m.WithLock(func() {
		c, s.conn = s.conn, nil
	})
	if c != nil {
		c.release()
	}
}

func (s *Session) String() string {
	return fmt.Sprintf("cql.Session{hosts:%v keyspace:%q}", s.cluster.Hosts, s.Keyspace())
}
