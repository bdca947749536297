package usecase

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-maker/internal/domain"
	"resume-maker/internal/metrics"
)

func TestNotificationsExpire(t *testing.T) {
	c := NewNotificationCenter(50*time.Millisecond, nil, nil)
	c.Notify(domain.LevelInfo, "Generating PDF...")

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Generating PDF...", active[0].Message)
	assert.Equal(t, domain.LevelInfo, active[0].Level)

	require.Eventually(t, func() bool { return len(c.Active()) == 0 }, time.Second, 10*time.Millisecond)
}

func TestNotificationsOrderAndDismiss(t *testing.T) {
	c := NewNotificationCenter(time.Minute, nil, nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	c.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	c.Notify(domain.LevelSuccess, "first")
	c.Notify(domain.LevelWarning, "second")
	c.Notify(domain.LevelError, "third")

	active := c.Active()
	require.Len(t, active, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{active[0].Message, active[1].Message, active[2].Message})

	c.Dismiss(active[1].ID)
	active = c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "third", active[1].Message)
}

func TestNotificationsAreCounted(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	c := NewNotificationCenter(0, nil, m)

	c.Notify(domain.LevelError, "a")
	c.Notify(domain.LevelError, "b")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("error")))
}
