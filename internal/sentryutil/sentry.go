// Package sentryutil wraps Sentry initialization and error capture. With no
// DSN configured every call is a no-op, so callers never branch on whether
// reporting is enabled.
package sentryutil

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
)

var enabled bool

// Init configures the Sentry client. An empty DSN disables reporting.
func Init(dsn, environment, release string) {
	if dsn == "" {
		log.Println("sentry: no DSN configured, error reporting disabled")
		return
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		log.Printf("sentry: init failed: %v", err)
		return
	}
	enabled = true
	log.Printf("sentry: enabled (env=%s, release=%s)", environment, release)
}

// CaptureError reports an error, tagged with the operation that produced it.
func CaptureError(err error, operation string) {
	if !enabled || err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("operation", operation)
		sentry.CaptureException(err)
	})
}

// Flush drains pending events; call before process exit.
func Flush() {
	if enabled {
		sentry.Flush(2 * time.Second)
	}
}
