package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	Mutations       *prometheus.CounterVec
	WriteThroughs   *prometheus.CounterVec
	WriteDuration   prometheus.Histogram
	Records         prometheus.Gauge
	Initializations *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg.
// A nil reg falls back to the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_store_mutations_total",
			Help:      "The total number of flight store mutations",
		}, []string{"operation"}),
		WriteThroughs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_store_write_throughs_total",
			Help:      "The total number of collection writes to the backing store",
		}, []string{"result"}),
		WriteDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_store_write_duration_seconds",
			Help:      "Time taken to write the collection to the backing store",
			Buckets:   prometheus.DefBuckets,
		}),
		Records: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "flight_store_records",
			Help:      "The number of flight records held in memory",
		}),
		Initializations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_store_initializations_total",
			Help:      "The total number of store initializations by data source",
		}, []string{"source"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "The total number of API requests",
		}, []string{"route", "status"}),
	}
}
