// internal/errutil/errutil.go
package errutil

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"

	custom_errors "github-signal-sync/internal/errors"
)

// Configure initializes the Sentry client. An empty DSN leaves reporting disabled.
func Configure(dsn, environment string, logger *slog.Logger) error {
	if dsn == "" {
		logger.Warn("Sentry is not configured")
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	}); err != nil {
		return err
	}
	return nil
}

// Flush waits for buffered Sentry events to be sent.
func Flush() {
	sentry.Flush(2 * time.Second)
}

// HandleError reports err to Sentry and logs it.
func HandleError(ctx context.Context, logger *slog.Logger, msg string, err error) {
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range Tags(err) {
			scope.SetTag(k, v)
		}
	})
	evID := hub.CaptureException(err)

	attrs := []any{"error", err}
	if evID != nil {
		attrs = append(attrs, "sentry_event_id", string(*evID))
	}
	logger.ErrorContext(ctx, msg, attrs...)
}

// Tags extracts the stage details carried by pipeline errors.
func Tags(err error) map[string]string {
	tags := map[string]string{}

	var te *custom_errors.TransportError
	if errors.As(err, &te) {
		tags["stage"] = "fetch"
		tags["kind"] = te.Kind
		tags["endpoint"] = te.Endpoint
		tags["page"] = strconv.Itoa(te.Page)
		if te.StatusCode != 0 {
			tags["status_code"] = strconv.Itoa(te.StatusCode)
		}
	}

	var ce *custom_errors.ConflictResolutionError
	if errors.As(err, &ce) {
		tags["stage"] = "reconcile"
		tags["kind"] = ce.Kind
	}

	return tags
}
