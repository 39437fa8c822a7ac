package metrics

import (
	"strings"

	"github.com/cqlbridge/cqlbridge-go/trace"
)

// Config is a Registry scoped by subsystem names and event details
type Config interface {
	Registry

	Details() trace.Details
	// WithSystem returns the Config with subsystem appended to the name prefix
	WithSystem(subsystem string) Config
}

type config struct {
	registry  Registry
	details   trace.Details
	namespace []string
	separator string
}

type ConfigOption func(c *config)

func WithDetails(d trace.Details) ConfigOption {
	return func(c *config) {
		c.details = d
	}
}

func WithNamespace(namespace string) ConfigOption {
	return func(c *config) {
		c.namespace = append(c.namespace, namespace)
	}
}

// WithSeparator changes the delimiter between name parts, "_" by default
func WithSeparator(separator string) ConfigOption {
	return func(c *config) {
		c.separator = separator
	}
}

func NewConfig(registry Registry, opts ...ConfigOption) Config {
	c := &config{
		registry:  registry,
		details:   trace.DetailsAll,
		separator: "_",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

func (c *config) Details() trace.Details {
	return c.details
}

func (c *config) WithSystem(subsystem string) Config {
	return &config{
		registry:  c.registry,
		details:   c.details,
		namespace: append(c.namespace[:len(c.namespace):len(c.namespace)], subsystem),
		separator: c.separator,
	}
}

func (c *config) name(name string) string {
	if len(c.namespace) == 0 {
		return name
	}

	return strings.Join(c.namespace, c.separator) + c.separator + name
}

func (c *config) CounterVec(name string, labelNames ...string) CounterVec {
	return c.registry.CounterVec(c.name(name), labelNames...)
}

func (c *config) GaugeVec(name string, labelNames ...string) GaugeVec {
	return c.registry.GaugeVec(c.name(name), labelNames...)
}

func (c *config) TimerVec(name string, labelNames ...string) TimerVec {
	return c.registry.TimerVec(c.name(name), labelNames...)
}

func (c *config) HistogramVec(name string, buckets []float64, labelNames ...string) HistogramVec {
	return c.registry.HistogramVec(c.name(name), buckets, labelNames...)
}
