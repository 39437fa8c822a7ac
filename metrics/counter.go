package metrics

// Counter counts value
type Counter interface {
	Inc()
}

// CounterVec returns Counter from CounterVec by labels
type CounterVec interface {
	With(labels map[string]string) Counter
}

// Gauge tracks single value
type Gauge interface {
	Add(delta float64)
	Set(value float64)
}

// GaugeVec returns Gauge from GaugeVec by labels
type GaugeVec interface {
	With(labels map[string]string) Gauge
}
