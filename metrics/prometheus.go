package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Registry = (*prometheusRegistry)(nil)

type prometheusRegistry struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	collectors map[string]prometheus.Collector
}

// Prometheus makes Registry over registerer. Vectors are registered on first use.
func Prometheus(registerer prometheus.Registerer) Registry {
	return &prometheusRegistry{
		registerer: registerer,
		collectors: make(map[string]prometheus.Collector),
	}
}

func vec[V prometheus.Collector](r *prometheusRegistry, name string, create func() V) V {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, has := r.collectors[name]; has {
		if v, ok := c.(V); ok {
			return v
		}
		panic("cqlbridge: metric " + name + " already registered with other type")
	}

	v := create()
	r.registerer.MustRegister(v)
	r.collectors[name] = v

	return v
}

func (r *prometheusRegistry) CounterVec(name string, labelNames ...string) CounterVec {
	return counterVec{vec(r, name, func() *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name}, labelNames)
	})}
}

func (r *prometheusRegistry) GaugeVec(name string, labelNames ...string) GaugeVec {
	return gaugeVec{vec(r, name, func() *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: name}, labelNames)
	})}
}

func (r *prometheusRegistry) TimerVec(name string, labelNames ...string) TimerVec {
	return timerVec{vec(r, name, func() *prometheus.HistogramVec {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    name + " in seconds",
			Buckets: prometheus.DefBuckets,
		}, labelNames)
	})}
}

func (r *prometheusRegistry) HistogramVec(name string, buckets []float64, labelNames ...string) HistogramVec {
	return histogramVec{vec(r, name, func() *prometheus.HistogramVec {
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    name,
			Help:    name,
			Buckets: buckets,
		}, labelNames)
	})}
}

type counterVec struct {
	v *prometheus.CounterVec
}

func (c counterVec) With(labels map[string]string) Counter {
	return c.v.With(labels)
}

type gaugeVec struct {
	v *prometheus.GaugeVec
}

func (g gaugeVec) With(labels map[string]string) Gauge {
	return g.v.With(labels)
}

type timerVec struct {
	v *prometheus.HistogramVec
}

func (t timerVec) With(labels map[string]string) Timer {
	return timer{t.v.With(labels)}
}

type timer struct {
	o prometheus.Observer
}

func (t timer) Record(value time.Duration) {
	t.o.Observe(value.Seconds())
}

type histogramVec struct {
	v *prometheus.HistogramVec
}

func (h histogramVec) With(labels map[string]string) Histogram {
	return histogram{h.v.With(labels)}
}

type histogram struct {
	o prometheus.Observer
}

func (h histogram) Record(value float64) {
	h.o.Observe(value)
}
