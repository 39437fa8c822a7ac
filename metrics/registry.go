package metrics

// Registry creates metric vectors. Implementations return the cached
// vector when called again with the same name.
type Registry interface {
	// CounterVec returns CounterVec by name and labels
	CounterVec(name string, labelNames ...string) CounterVec

	// GaugeVec returns GaugeVec by name and labels
	GaugeVec(name string, labelNames ...string) GaugeVec

	// TimerVec returns TimerVec by name and labels
	TimerVec(name string, labelNames ...string) TimerVec

	// HistogramVec returns HistogramVec by name, buckets and labels
	HistogramVec(name string, buckets []float64, labelNames ...string) HistogramVec
}
