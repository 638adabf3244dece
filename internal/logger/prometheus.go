package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var (
	// statements counts log events per level. Registered on first use.
	statements *prometheus.CounterVec //nolint:gochecknoglobals
	// writeErrors counts events zerolog failed to write.
	writeErrors prometheus.Counter //nolint:gochecknoglobals

	registerOnce sync.Once //nolint:gochecknoglobals
)

// PrometheusHook calls Prometheus statistics at log write.
type PrometheusHook struct{}

// Run implements zerolog.Hook run method.
func (h PrometheusHook) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level != zerolog.NoLevel {
		statements.WithLabelValues(level.String()).Inc()
	}
}

// NewPrometheusHook returns a prometheus hook counting how often a specific log level was used.
// The service label is fixed by the first call.
func NewPrometheusHook(service string) PrometheusHook {
	register(service)

	return PrometheusHook{}
}

func register(service string) {
	registerOnce.Do(func() {
		labels := prometheus.Labels{"service": service}

		statements = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "log_statements_total",
				Help:        "Number of log statements, differentiated by log level.",
				ConstLabels: labels,
			},
			[]string{"level"},
		)

		writeErrors = promauto.NewCounter(prometheus.CounterOpts{
			Name:        "log_write_errors_total",
			Help:        "Number of log events that could not be written.",
			ConstLabels: labels,
		})
	})
}
