package domain

import "time"

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 3 * time.Second

// Notification is a transient user-visible message.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Icon returns the icon name used when the notification is displayed.
func (l Level) Icon() string {
	switch l {
	case LevelSuccess:
		return "check-circle"
	case LevelError:
		return "exclamation-circle"
	case LevelWarning:
		return "exclamation-triangle"
	}
	return "info-circle"
}

// Color returns the background color of the notification.
func (l Level) Color() string {
	switch l {
	case LevelSuccess:
		return "#10b981"
	case LevelError:
		return "#ef4444"
	case LevelWarning:
		return "#f59e0b"
	}
	return "#3b82f6"
}
