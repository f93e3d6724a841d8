package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the attendance module.
type Metrics struct {
	// Verification outcomes by result
	VerificationOutcome *prometheus.CounterVec

	// Measured distances for accepted submissions
	AcceptedDistance prometheus.Histogram

	// End-to-end Record latency
	RecordLatency prometheus.Histogram
}

// New creates a new Metrics instance with all attendance metrics registered.
func New() *Metrics {
	return &Metrics{
		VerificationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vokasia_attendance_verifications_total",
			Help: "Total attendance verification outcomes by result",
		}, []string{"outcome"}), // outcome: recorded, out_of_range, invalid_pass, rejected, error

		AcceptedDistance: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vokasia_attendance_accepted_distance_meters",
			Help:    "Measured distance from the venue for accepted submissions",
			Buckets: []float64{5, 10, 25, 50, 75, 100, 150},
		}),

		RecordLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vokasia_attendance_record_duration_seconds",
			Help:    "Duration of full attendance verification and persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementOutcome records one verification outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.VerificationOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveAccepted records the measured distance of an accepted submission.
func (m *Metrics) ObserveAccepted(distanceM float64) {
	if m != nil {
		m.AcceptedDistance.Observe(distanceM)
	}
}

// ObserveRecordLatency records the total Record duration.
func (m *Metrics) ObserveRecordLatency(d time.Duration) {
	if m != nil {
		m.RecordLatency.Observe(d.Seconds())
	}
}
