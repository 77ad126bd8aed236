package logging

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	User  string
	Token string `masq:"secret"`
}

func TestNew(t *testing.T) {
	t.Run("json output redacts secrets", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("json", "info", &buf)
		require.NoError(t, err)

		logger.Info("loaded", "creds", credentials{User: "bot", Token: "ghp_supersecret"})

		assert.Contains(t, buf.String(), "bot")
		assert.NotContains(t, buf.String(), "ghp_supersecret")
	})

	t.Run("respects the level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("json", "warn", &buf)
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("text format", func(t *testing.T) {
		_, err := New("text", "debug", io.Discard)
		assert.NoError(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := New("xml", "info", io.Discard)
		assert.Error(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New("json", "verbose", io.Discard)
		assert.Error(t, err)
	})
}
