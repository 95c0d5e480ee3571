// Package logger wraps logrus with the request-scoped fields used across the app.
package logger

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	UserIDKey    ContextKey = "user_id"
)

var std = New("info", "text")

// New builds a logrus logger. Unknown levels fall back to info.
func New(level, format string) *logrus.Logger {
	l := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}
	l.SetOutput(os.Stdout)
	return l
}

// Init replaces the global logger. Call once from main.
func Init(level, format string) {
	std = New(level, format)
}

func L() *logrus.Logger { return std }

// WithContext pulls request_id / user_id out of ctx when present.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(std)
	if ctx == nil {
		return entry
	}
	if v := ctx.Value(RequestIDKey); v != nil {
		entry = entry.WithField("request_id", v)
	}
	if v := ctx.Value(UserIDKey); v != nil {
		entry = entry.WithField("user_id", v)
	}
	return entry
}

func WithComponent(component string) *logrus.Entry {
	return std.WithField("component", component)
}

func WithError(err error) *logrus.Entry { return std.WithError(err) }

func Infof(format string, args ...any)  { std.Infof(format, args...) }
func Fatalf(format string, args ...any) { std.Fatalf(format, args...) }
