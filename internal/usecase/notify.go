package usecase

import (
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"resume-maker/internal/domain"
	"resume-maker/internal/metrics"
)

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Notify(level domain.Level, message string)
}

// NotificationCenter keeps notifications visible for a fixed duration; expired
// entries disappear from Active on their own.
type NotificationCenter struct {
	cache   *cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewNotificationCenter creates a center whose notifications live for ttl.
func NewNotificationCenter(ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *NotificationCenter {
	if ttl <= 0 {
		ttl = domain.NotificationTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationCenter{
		cache:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

func (c *NotificationCenter) Notify(level domain.Level, message string) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: c.now(),
	}
	c.cache.Set(n.ID, n, cache.DefaultExpiration)
	c.metrics.Notification(string(level))
	c.logger.Debug("notification", "level", level, "message", message)
}

// Active returns the notifications that have not been dismissed yet, oldest first.
func (c *NotificationCenter) Active() []domain.Notification {
	items := c.cache.Items()
	out := make([]domain.Notification, 0, len(items))
	for _, it := range items {
		if n, ok := it.Object.(domain.Notification); ok {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Dismiss removes a notification before it expires.
func (c *NotificationCenter) Dismiss(id string) {
	c.cache.Delete(id)
}
