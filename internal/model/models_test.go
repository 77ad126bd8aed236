package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	custom_errors "github-signal-sync/internal/errors"
)

func TestParseRepoIdentifier(t *testing.T) {
	id, err := ParseRepoIdentifier("acme/widgets")
	require.NoError(t, err)
	assert.Equal(t, RepoIdentifier{Owner: "acme", Name: "widgets"}, id)
	assert.Equal(t, "acme/widgets", id.String())
	assert.False(t, id.IsZero())

	for _, bad := range []string{"", "acme", "/widgets", "acme/", "a/b/c"} {
		_, err := ParseRepoIdentifier(bad)
		var formatErr *custom_errors.ErrInvalidRepoFormat
		assert.ErrorAs(t, err, &formatErr, bad)
	}

	assert.True(t, RepoIdentifier{}.IsZero())
}
