package board

import (
	log "github.com/sirupsen/logrus"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notification is a non-blocking message for the user. Retryable is set when
// repeating the same action (resubmitting a form, refreshing) may succeed.
type Notification struct {
	Level     Level
	Message   string
	Retryable bool
}

type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

// LogNotifier writes notifications to a logrus logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (l LogNotifier) Notify(n Notification) {
	logger := l.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	entry := logger.WithField("retryable", n.Retryable)
	switch n.Level {
	case LevelError:
		entry.Error(n.Message)
	case LevelInfo:
		entry.Info(n.Message)
	default:
		entry.WithField("level", string(n.Level)).Warn(n.Message)
	}
}
