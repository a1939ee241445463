package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the analysis module.
type Metrics struct {
	// Completed analyses by risk level
	AnalysesCompleted *prometheus.CounterVec

	// Submissions rejected during normalization, by validation reason
	AnalysesRejected *prometheus.CounterVec

	// Final risk score distribution
	RiskScore prometheus.Histogram

	// Full analyze latency including persistence
	AnalyzeLatency prometheus.Histogram
}

// New creates a new Metrics instance with all analysis module metrics registered.
func New() *Metrics {
	return &Metrics{
		AnalysesCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskscope_analyses_completed_total",
			Help: "Total completed analyses by resulting risk level",
		}, []string{"risk_level"}),

		AnalysesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "riskscope_analyses_rejected_total",
			Help: "Total submissions rejected during validation by reason",
		}, []string{"reason"}),

		RiskScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskscope_risk_score",
			Help:    "Distribution of final risk scores",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 65, 80, 100},
		}),

		AnalyzeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "riskscope_analyze_duration_seconds",
			Help:    "Duration of a full analysis including history persistence",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementCompleted records one finished analysis.
func (m *Metrics) IncrementCompleted(riskLevel string) {
	if m != nil {
		m.AnalysesCompleted.WithLabelValues(riskLevel).Inc()
	}
}

// IncrementRejected records one validation rejection.
func (m *Metrics) IncrementRejected(reason string) {
	if m != nil {
		m.AnalysesRejected.WithLabelValues(reason).Inc()
	}
}

// ObserveScore records a final risk score.
func (m *Metrics) ObserveScore(score int) {
	if m != nil {
		m.RiskScore.Observe(float64(score))
	}
}

// ObserveAnalyzeLatency records the total analyze duration.
func (m *Metrics) ObserveAnalyzeLatency(d time.Duration) {
	if m != nil {
		m.AnalyzeLatency.Observe(d.Seconds())
	}
}
