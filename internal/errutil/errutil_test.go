package errutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	custom_errors "github-signal-sync/internal/errors"
)

func TestTags(t *testing.T) {
	t.Run("transport error", func(t *testing.T) {
		err := fmt.Errorf("sync o/r: %w", &custom_errors.TransportError{
			Kind: "commits", Endpoint: "/repos/o/r/commits", Page: 3, StatusCode: 502, Err: errors.New("bad gateway"),
		})

		tags := Tags(err)

		assert.Equal(t, map[string]string{
			"stage":       "fetch",
			"kind":        "commits",
			"endpoint":    "/repos/o/r/commits",
			"page":        "3",
			"status_code": "502",
		}, tags)
	})

	t.Run("conflict resolution error", func(t *testing.T) {
		err := &custom_errors.ConflictResolutionError{Kind: "issues", Rows: 2, Err: errors.New("value too long")}

		tags := Tags(err)

		assert.Equal(t, "reconcile", tags["stage"])
		assert.Equal(t, "issues", tags["kind"])
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Empty(t, Tags(errors.New("x")))
	})
}

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	// Sentry is not initialized, so capture is a no-op and only the log line remains.
	HandleError(context.Background(), logger, "sync failed", errors.New("boom"))

	assert.Contains(t, buf.String(), `"msg":"sync failed"`)
	assert.Contains(t, buf.String(), "boom")
}
