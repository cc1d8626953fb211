package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CheckoutIntentTotal counts intent creation outcomes by checkout mode.
	CheckoutIntentTotal *prometheus.CounterVec
	// ProcessorCallTotal counts upstream processor calls by operation and outcome.
	ProcessorCallTotal *prometheus.CounterVec
	// ProcessorCallLatency records upstream processor call latency in milliseconds.
	ProcessorCallLatency *prometheus.HistogramVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CheckoutIntentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_intent_total",
			Help:      "Count of checkout intent creation outcomes by mode.",
		}, []string{"mode", "result"})
		ProcessorCallTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "processor_call_total",
			Help:      "Count of upstream payment processor calls by operation and outcome.",
		}, []string{"operation", "result"})
		ProcessorCallLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "processor_call_duration_ms",
			Help:      "Latency of upstream payment processor calls in milliseconds.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"operation"})

		mustRegisterCollector(reg, CheckoutIntentTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutIntentTotal = v
			}
		})
		mustRegisterCollector(reg, ProcessorCallTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ProcessorCallTotal = v
			}
		})
		mustRegisterCollector(reg, ProcessorCallLatency, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.HistogramVec); ok {
				ProcessorCallLatency = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
