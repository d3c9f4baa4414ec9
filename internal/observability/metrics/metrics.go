package metrics

import "github.com/prometheus/client_golang/prometheus"

// AvailabilityMetrics exposes counters/histograms for the slot engine.
type AvailabilityMetrics struct {
	requestsTotal *prometheus.CounterVec
	slotsReturned *prometheus.HistogramVec
}

func NewAvailabilityMetrics(reg prometheus.Registerer) *AvailabilityMetrics {
	m := &AvailabilityMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carebook",
			Subsystem: "availability",
			Name:      "requests_total",
			Help:      "Total availability requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		slotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "carebook",
			Subsystem: "availability",
			Name:      "slots_returned",
			Help:      "Number of slots returned per availability response",
			Buckets:   []float64{0, 1, 2, 4, 8, 12, 16, 24},
		}, []string{"endpoint"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.slotsReturned)
	return m
}

func (m *AvailabilityMetrics) ObserveRequest(endpoint, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(endpoint, status).Inc()
}

func (m *AvailabilityMetrics) ObserveSlots(endpoint string, count int) {
	if m == nil {
		return
	}
	m.slotsReturned.WithLabelValues(endpoint).Observe(float64(count))
}

// InteractionMetrics tracks optimistic toggle settlements.
type InteractionMetrics struct {
	togglesTotal  *prometheus.CounterVec
	settleLatency *prometheus.HistogramVec
}

func NewInteractionMetrics(reg prometheus.Registerer) *InteractionMetrics {
	m := &InteractionMetrics{
		togglesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "carebook",
			Subsystem: "interactions",
			Name:      "toggles_total",
			Help:      "Total toggle attempts by kind and outcome",
		}, []string{"kind", "outcome"}),
		settleLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "carebook",
			Subsystem: "interactions",
			Name:      "settle_latency_seconds",
			Help:      "Latency from optimistic flip to settlement",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.togglesTotal, m.settleLatency)
	return m
}

func (m *InteractionMetrics) ObserveToggle(kind, outcome string) {
	if m == nil {
		return
	}
	m.togglesTotal.WithLabelValues(kind, outcome).Inc()
}

func (m *InteractionMetrics) ObserveSettleLatency(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.settleLatency.WithLabelValues(kind).Observe(seconds)
}
