// Package sentry wraps Sentry error tracking. When SENTRY_DSN is unset the
// service runs disabled and every call is a no-op.
package sentry

import (
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
)

// Aliases so callers only import this package.
type (
	Level = sentry.Level
	Scope = sentry.Scope
)

const (
	LevelWarning = sentry.LevelWarning
	LevelError   = sentry.LevelError
)

// SentryService provides Sentry error tracking functionality.
type SentryService struct {
	initialized bool
}

// NewSentryService creates and initializes a new Sentry service.
func NewSentryService() *SentryService {
	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		log.Println("SENTRY_DSN not set, Sentry disabled")
		return &SentryService{initialized: false}
	}

	environment := os.Getenv("SENTRY_ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		TracesSampleRate: 1.0,
		EnableTracing:    true,
	})
	if err != nil {
		log.Printf("Sentry initialization failed: %v", err)
		return &SentryService{initialized: false}
	}

	return &SentryService{initialized: true}
}

// CaptureException captures an error and sends it to Sentry.
func (s *SentryService) CaptureException(err error) {
	if !s.initialized {
		return
	}
	sentry.CaptureException(err)
}

// WithScope executes a function with a new Sentry scope.
func (s *SentryService) WithScope(fn func(scope *Scope)) {
	if !s.initialized {
		return
	}
	sentry.WithScope(fn)
}

// Flush waits for buffered events to be sent.
func (s *SentryService) Flush(timeout time.Duration) bool {
	if !s.initialized {
		return true
	}
	return sentry.Flush(timeout)
}

// Close flushes and shuts down the Sentry client.
func (s *SentryService) Close() {
	s.Flush(2 * time.Second)
}
