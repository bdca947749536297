// Package metrics exposes prometheus counters for the editing session.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the session counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Renders       prometheus.Counter
	Saves         *prometheus.CounterVec
	Imports       *prometheus.CounterVec
	Exports       *prometheus.CounterVec
	Notifications *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resume",
			Name:      "renders_total",
			Help:      "Number of preview renders.",
		}),
		Saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Name:      "saves_total",
			Help:      "Number of saves to persistent storage by trigger and result.",
		}, []string{"trigger", "result"}),
		Imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Name:      "imports_total",
			Help:      "Number of JSON imports by result.",
		}, []string{"result"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Name:      "exports_total",
			Help:      "Number of exports by format and result.",
		}, []string{"format", "result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Name:      "notifications_total",
			Help:      "Number of notifications raised by level.",
		}, []string{"level"}),
	}
	if reg != nil {
		reg.MustRegister(m.Renders, m.Saves, m.Imports, m.Exports, m.Notifications)
	}
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Render counts one preview render.
func (m *Metrics) Render() {
	if m == nil {
		return
	}
	m.Renders.Inc()
}

// Save counts a save attempt.
func (m *Metrics) Save(trigger string, err error) {
	if m == nil {
		return
	}
	m.Saves.WithLabelValues(trigger, result(err)).Inc()
}

// Import counts an import attempt.
func (m *Metrics) Import(err error) {
	if m == nil {
		return
	}
	m.Imports.WithLabelValues(result(err)).Inc()
}

// Export counts an export attempt.
func (m *Metrics) Export(format string, err error) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format, result(err)).Inc()
}

// Notification counts a raised notification.
func (m *Metrics) Notification(level string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(level).Inc()
}
