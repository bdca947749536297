package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersByLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Render()
	m.Render()
	m.Save("autosave", nil)
	m.Save("manual", errors.New("full"))
	m.Export("pdf", nil)
	m.Import(errors.New("bad"))
	m.Notification("warning")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Renders))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Saves.WithLabelValues("autosave", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Saves.WithLabelValues("manual", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exports.WithLabelValues("pdf", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Imports.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("warning")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Render()
		m.Save("manual", nil)
		m.Import(nil)
		m.Export("html", nil)
		m.Notification("info")
	})
}
