package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cardiocheck"

// Outcome labels shared by the auth and notification counters.
const (
	OutcomeSuccess   = "success"
	OutcomeFailure   = "failure"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeLimited   = "rate_limited"
	OutcomeSkipped   = "skipped"
)

// Metrics owns a private registry so tests and multiple handlers never collide
// on the global default registerer.
type Metrics struct {
	registry *prometheus.Registry

	predictions          *prometheus.CounterVec
	predictionLatency    prometheus.Summary
	logins               *prometheus.CounterVec
	registrations        *prometheus.CounterVec
	loginNotifications   *prometheus.CounterVec
	feedback             *prometheus.CounterVec
	modelHoldoutAccuracy prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served, by predicted label.",
		}, []string{"label"}),
		predictionLatency: factory.NewSummary(prometheus.SummaryOpts{
			Namespace:  namespace,
			Name:       "prediction_duration_seconds",
			Help:       "Time spent scoring one feature vector.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts, by outcome.",
		}, []string{"outcome"}),
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts, by outcome.",
		}, []string{"outcome"}),
		loginNotifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_notifications_total",
			Help:      "Login notification emails, by outcome.",
		}, []string{"outcome"}),
		feedback: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_total",
			Help:      "Feedback entries stored, by category.",
		}, []string{"category"}),
		modelHoldoutAccuracy: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_holdout_accuracy",
			Help:      "Accuracy of the trained classifier on the holdout split.",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObservePrediction(label int, seconds float64) {
	name := "negative"
	if label == 1 {
		name = "positive"
	}
	m.predictions.WithLabelValues(name).Inc()
	m.predictionLatency.Observe(seconds)
}

func (m *Metrics) ObserveLogin(outcome string) {
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRegistration(outcome string) {
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLoginNotification(outcome string) {
	m.loginNotifications.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFeedback(category string) {
	m.feedback.WithLabelValues(category).Inc()
}

func (m *Metrics) SetModelAccuracy(accuracy float64) {
	m.modelHoldoutAccuracy.Set(accuracy)
}
