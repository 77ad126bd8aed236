package github

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode[T any](t *testing.T, raw string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return &v
}

func TestNormalizePullRequest(t *testing.T) {
	t.Run("maps every field", func(t *testing.T) {
		pr := decode[github.PullRequest](t, `{
			"id": 42, "number": 7, "title": "Add feature", "state": "closed",
			"html_url": "https://github.com/o/r/pull/7",
			"created_at": "2026-01-13T12:34:56Z", "updated_at": "2026-01-14T00:00:00Z",
			"merged_at": "2026-01-14T00:00:00Z", "user": {"login": "octocat"}
		}`)

		row := NormalizePullRequest(pr, "o", "r")

		assert.Equal(t, "o", row.RepoOwner)
		assert.Equal(t, "r", row.RepoName)
		assert.Equal(t, int64(42), row.GithubID)
		assert.Equal(t, 7, row.Number)
		assert.Equal(t, "Add feature", row.Title)
		assert.Equal(t, "closed", row.State)
		assert.Equal(t, "https://github.com/o/r/pull/7", row.URL)
		require.NotNil(t, row.CreatedAt)
		assert.True(t, row.CreatedAt.Equal(time.Date(2026, 1, 13, 12, 34, 56, 0, time.UTC)))
		require.NotNil(t, row.MergedAt)
		assert.Equal(t, "octocat", row.AuthorLogin)
	})

	t.Run("applies defaults for missing fields", func(t *testing.T) {
		pr := decode[github.PullRequest](t, `{"id": 1, "number": 1, "merged_at": null}`)

		row := NormalizePullRequest(pr, "o", "r")

		assert.Equal(t, "", row.Title)
		assert.Equal(t, "open", row.State)
		assert.Equal(t, "", row.URL)
		assert.Equal(t, "", row.AuthorLogin)
		assert.Nil(t, row.MergedAt)
		assert.Nil(t, row.CreatedAt)
	})

	t.Run("is deterministic", func(t *testing.T) {
		pr := decode[github.PullRequest](t, `{"id": 5, "title": "x", "created_at": "2026-01-13T12:34:56Z"}`)
		assert.Equal(t, NormalizePullRequest(pr, "o", "r"), NormalizePullRequest(pr, "o", "r"))
	})
}

func TestNormalizeIssue(t *testing.T) {
	t.Run("skips pull-request shaped records", func(t *testing.T) {
		it := decode[github.Issue](t, `{"id": 9, "number": 3, "pull_request": {"url": "https://api.github.com/repos/o/r/pulls/3"}}`)

		_, ok := NormalizeIssue(it, "o", "r")

		assert.False(t, ok)
	})

	t.Run("skips an empty pull request back-reference too", func(t *testing.T) {
		it := decode[github.Issue](t, `{"id": 9, "pull_request": {}}`)

		_, ok := NormalizeIssue(it, "o", "r")

		assert.False(t, ok)
	})

	t.Run("missing title, state and author", func(t *testing.T) {
		it := decode[github.Issue](t, `{"id": 10, "number": 4, "closed_at": null}`)

		row, ok := NormalizeIssue(it, "o", "r")

		require.True(t, ok)
		assert.Equal(t, int64(10), row.GithubID)
		assert.Equal(t, "", row.Title)
		assert.Equal(t, "open", row.State)
		assert.Nil(t, row.AuthorLogin)
		assert.Nil(t, row.ClosedAt)
	})

	t.Run("timestamp round trip", func(t *testing.T) {
		it := decode[github.Issue](t, `{"id": 11, "created_at": "2026-01-13T12:34:56Z", "closed_at": "2026-01-15T08:00:00Z", "user": {"login": "hubot"}}`)

		row, ok := NormalizeIssue(it, "o", "r")

		require.True(t, ok)
		require.NotNil(t, row.CreatedAt)
		assert.Equal(t, time.Date(2026, 1, 13, 12, 34, 56, 0, time.UTC), *row.CreatedAt)
		require.NotNil(t, row.ClosedAt)
		assert.Equal(t, time.UTC, row.ClosedAt.Location())
		require.NotNil(t, row.AuthorLogin)
		assert.Equal(t, "hubot", *row.AuthorLogin)
	})
}

func TestNormalizeCommit(t *testing.T) {
	t.Run("reads nested commit metadata", func(t *testing.T) {
		c := decode[github.RepositoryCommit](t, `{
			"sha": "abc123", "html_url": "https://github.com/o/r/commit/abc123",
			"commit": {"message": "  fix: a bug\n\n", "author": {"name": "T", "date": "2026-01-13T12:34:56Z"}},
			"author": {"login": "octocat"}
		}`)

		row := NormalizeCommit(c, "o", "r")

		assert.Equal(t, "abc123", row.SHA)
		assert.Equal(t, "https://github.com/o/r/commit/abc123", row.URL)
		assert.Equal(t, "fix: a bug", row.Message)
		require.NotNil(t, row.AuthorLogin)
		assert.Equal(t, "octocat", *row.AuthorLogin)
		require.NotNil(t, row.CommittedAt)
		assert.Equal(t, time.Date(2026, 1, 13, 12, 34, 56, 0, time.UTC), *row.CommittedAt)
	})

	t.Run("tolerates missing nesting levels", func(t *testing.T) {
		for _, raw := range []string{
			`{"sha": "a"}`,
			`{"sha": "a", "commit": null, "author": null}`,
			`{"sha": "a", "commit": {"author": null}}`,
			`{"sha": "a", "commit": {"author": {"date": null}}}`,
		} {
			c := decode[github.RepositoryCommit](t, raw)

			row := NormalizeCommit(c, "o", "r")

			assert.Equal(t, "a", row.SHA, raw)
			assert.Equal(t, "", row.Message, raw)
			assert.Nil(t, row.AuthorLogin, raw)
			assert.Nil(t, row.CommittedAt, raw)
		}
	})
}
