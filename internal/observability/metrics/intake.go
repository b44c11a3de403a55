package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirillkom/customs-intake/internal/core/domain"
	"github.com/kirillkom/customs-intake/internal/core/ports"
)

// IntakeMetrics records intake activity. It implements ports.IntakeObserver.
type IntakeMetrics struct {
	registry *prometheus.Registry

	sessionsOpened      prometheus.Counter
	documentsAnalyzed   *prometheus.CounterVec
	analysisDuration    *prometheus.HistogramVec
	analysesInFlight    prometheus.Gauge
	declarationsCounter prometheus.Counter
}

var _ ports.IntakeObserver = (*IntakeMetrics)(nil)

func NewIntakeMetrics(service string) *IntakeMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	sessionsOpened := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "customs",
			Name:        "intake_sessions_opened_total",
			Help:        "Total intake sessions opened.",
			ConstLabels: constLabels,
		},
	)
	documentsAnalyzed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "customs",
			Name:        "intake_documents_analyzed_total",
			Help:        "Total analyzed documents by type and status.",
			ConstLabels: constLabels,
		},
		[]string{"type", "status"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "customs",
			Name:        "intake_analysis_duration_seconds",
			Help:        "Time from scheduling an analysis to its end, by kind.",
			Buckets:     []float64{0.1, 0.5, 1, 1.5, 2, 3, 5, 10, 30},
			ConstLabels: constLabels,
		},
		[]string{"kind"},
	)
	analysesInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "customs",
			Name:        "intake_analyses_in_flight",
			Help:        "Number of in-flight document and eligibility analyses.",
			ConstLabels: constLabels,
		},
	)
	declarations := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace:   "customs",
			Name:        "intake_declarations_submitted_total",
			Help:        "Total declarations submitted.",
			ConstLabels: constLabels,
		},
	)

	registry.MustRegister(sessionsOpened, documentsAnalyzed, analysisDuration, analysesInFlight, declarations)

	return &IntakeMetrics{
		registry:            registry,
		sessionsOpened:      sessionsOpened,
		documentsAnalyzed:   documentsAnalyzed,
		analysisDuration:    analysisDuration,
		analysesInFlight:    analysesInFlight,
		declarationsCounter: declarations,
	}
}

func (m *IntakeMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *IntakeMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *IntakeMetrics) SessionOpened() {
	m.sessionsOpened.Inc()
}

func (m *IntakeMetrics) AnalysisStarted(ports.AnalysisKind) {
	m.analysesInFlight.Inc()
}

func (m *IntakeMetrics) AnalysisFinished(kind ports.AnalysisKind, elapsed time.Duration) {
	m.analysesInFlight.Dec()
	if elapsed < 0 {
		return
	}
	m.analysisDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func (m *IntakeMetrics) DocumentAnalyzed(doc domain.Document) {
	m.documentsAnalyzed.WithLabelValues(string(doc.Type), string(doc.Status)).Inc()
}

func (m *IntakeMetrics) DeclarationSubmitted(domain.Declaration) {
	m.declarationsCounter.Inc()
}
