package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusAPI forwards every report to an inner API and records it as a
// prometheus metric so a long running process can be scraped.
type PrometheusAPI struct {
	inner    API
	broken   *prometheus.CounterVec
	warnings *prometheus.CounterVec
	counts   *prometheus.GaugeVec
}

// NewPrometheusAPI registers its collectors on reg.
func NewPrometheusAPI(inner API, reg prometheus.Registerer) (PrometheusAPI, error) {
	p := PrometheusAPI{
		inner: inner,
		broken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "journalrank",
			Name:      "broken_total",
			Help:      "Number of broken component reports by id.",
		}, []string{"id"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "journalrank",
			Name:      "warnings_total",
			Help:      "Number of warning reports by id.",
		}, []string{"id"}),
		counts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "journalrank",
			Name:      "count",
			Help:      "Most recent value reported for a count id.",
		}, []string{"id"}),
	}
	for _, c := range []prometheus.Collector{p.broken, p.warnings, p.counts} {
		err := reg.Register(c)
		if err != nil {
			return PrometheusAPI{}, err
		}
	}
	return p, nil
}

func (p PrometheusAPI) ReportBroken(id string, params ...any) {
	p.broken.WithLabelValues(id).Inc()
	p.inner.ReportBroken(id, params...)
}

func (p PrometheusAPI) ReportWarning(id string, params ...any) {
	p.warnings.WithLabelValues(id).Inc()
	p.inner.ReportWarning(id, params...)
}

func (p PrometheusAPI) ReportDebug(msg string, params ...any) {
	p.inner.ReportDebug(msg, params...)
}

func (p PrometheusAPI) ReportCount(id string, count int64) {
	p.counts.WithLabelValues(id).Set(float64(count))
	p.inner.ReportCount(id, count)
}
