// Package telemetry reports upstream failures to Sentry.  With an empty DSN
// every call is a no-op.
package telemetry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry initializes the Sentry SDK.  It reports whether reporting is
// active; an empty dsn disables it without error.
func InitSentry(dsn, service, env, release string) (bool, error) {
	if dsn == "" {
		return false, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          release,
		AttachStacktrace: true,
		Tags: map[string]string{
			"service": service,
		},
	})
	if err != nil {
		return false, fmt.Errorf("sentry.Init: %w", err)
	}
	return true, nil
}

// CaptureError sends err with tags attached.  Safe to call when Sentry was
// never initialized.
func CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}

// Flush waits up to timeout for buffered events.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}
