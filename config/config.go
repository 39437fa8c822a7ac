package config

import (
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cqlbridge/cqlbridge-go/log"
	"github.com/cqlbridge/cqlbridge-go/trace"
)

const (
	DefaultPort           = 9042
	DefaultPageSize       = 5000
	DefaultConsistency    = "LOCAL_ONE"
	DefaultConnectTimeout = 5 * time.Second
	DefaultRequestTimeout = 12 * time.Second
)

// LoadBalancing selects how the driver picks coordinator nodes.
//
// TokenAware routes requests to replicas owning the partition, DCAware
// prefers nodes of LocalDC. Both flags may be combined.
type LoadBalancing struct {
	TokenAware bool
	DCAware    bool
	LocalDC    string
}

type Config struct {
	loadBalancing LoadBalancing

	port        int
	keyspace    string
	consistency string
	pageSize    int
	workers     int

	connectTimeout time.Duration
	requestTimeout time.Duration

	trace *trace.Bridge
	clock clockwork.Clock
}

type Option func(c *Config)

func New(opts ...Option) *Config {
	c := defaults()
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// With returns a copy of c with opts applied, c is left intact
func (c *Config) With(opts ...Option) *Config {
	cp := *c
	for _, opt := range opts {
		if opt != nil {
			opt(&cp)
		}
	}

	return &cp
}

func defaults() *Config {
	return &Config{
		port:           DefaultPort,
		consistency:    DefaultConsistency,
		pageSize:       DefaultPageSize,
		workers:        runtime.GOMAXPROCS(0),
		connectTimeout: DefaultConnectTimeout,
		requestTimeout: DefaultRequestTimeout,
		trace:          &trace.Bridge{},
		clock:          clockwork.NewRealClock(),
	}
}

func WithLoadBalancing(lb LoadBalancing) Option {
	return func(c *Config) {
		c.loadBalancing = lb
	}
}

// WithPort is used for hosts given without an explicit port
func WithPort(port int) Option {
	return func(c *Config) {
		if port > 0 {
			c.port = port
		}
	}
}

func WithKeyspace(keyspace string) Option {
	return func(c *Config) {
		c.keyspace = keyspace
	}
}

// WithConsistency sets consistency by name, e.g. "QUORUM"
func WithConsistency(consistency string) Option {
	return func(c *Config) {
		if consistency != "" {
			c.consistency = consistency
		}
	}
}

// WithPageSize defines how many rows one page fetch brings.
// If size is less than or equal to zero then DefaultPageSize is used.
func WithPageSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithWorkers bounds the number of concurrently running background tasks
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.workers = n
		}
	}
}

func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.connectTimeout = timeout
		}
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.requestTimeout = timeout
		}
	}
}

// WithTrace appends trace to early defined traces
func WithTrace(t *trace.Bridge) Option {
	return func(c *Config) {
		if t != nil {
			c.trace = c.trace.Compose(t)
		}
	}
}

// WithLogger appends a trace that logs events selected by details
func WithLogger(l log.Logger, details trace.Detailer, opts ...log.Option) Option {
	return func(c *Config) {
		t := log.Bridge(l, details, append([]log.Option{log.WithClock(c.clock)}, opts...)...)
		c.trace = c.trace.Compose(&t)
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func (c *Config) LoadBalancing() LoadBalancing {
	return c.loadBalancing
}

func (c *Config) Port() int {
	return c.port
}

func (c *Config) Keyspace() string {
	return c.keyspace
}

func (c *Config) Consistency() string {
	return c.consistency
}

func (c *Config) PageSize() int {
	return c.pageSize
}

func (c *Config) Workers() int {
	return c.workers
}

// ConnectTimeout limits initial connection establishment
func (c *Config) ConnectTimeout() time.Duration {
	return c.connectTimeout
}

// RequestTimeout limits a single request, including a page fetch
func (c *Config) RequestTimeout() time.Duration {
	return c.requestTimeout
}

func (c *Config) Trace() *trace.Bridge {
	return c.trace
}

func (c *Config) Clock() clockwork.Clock {
	return c.clock
}
