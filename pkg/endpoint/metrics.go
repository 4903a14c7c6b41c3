package endpoint

//
// Metrics definitions
//

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metricsSummaryObjectives returns the summary objectives for promauto.NewSummaryVec.
func metricsSummaryObjectives() map[float64]float64 {
	return map[float64]float64{
		0.5:  0.010,
		0.9:  0.010,
		0.99: 0.001,
	}
}

var (
	// metricRequestsCount counts the loads that completed.
	metricRequestsCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "endpoint_requests_count",
		Help: "Total number of completed loads",
	}, []string{"method", "outcome"})

	// metricRequestsInflight gauges the number of loads currently inflight.
	metricRequestsInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "endpoint_requests_inflight_gauge",
		Help: "The number of loads currently inflight",
	})

	// metricRequestDurationSeconds summarizes the time to complete a load.
	metricRequestDurationSeconds = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "endpoint_request_duration_seconds",
		Help:       "Summarizes the time to complete a load (in seconds)",
		Objectives: metricsSummaryObjectives(),
	}, []string{"method"})
)

// metricsOutcome returns the outcome label for err.
func metricsOutcome(err error) string {
	var (
		rerr *RequestError
		verr *ValidationError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &rerr):
		return rerr.Kind.String()
	case errors.As(err, &verr):
		return verr.Kind.String()
	default:
		return "other"
	}
}
