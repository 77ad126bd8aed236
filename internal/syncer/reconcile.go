package syncer

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github-signal-sync/internal/database"
	custom_errors "github-signal-sync/internal/errors"
	"github-signal-sync/internal/model"
)

// reconcilePullRequests upserts one batch of pull requests in a single statement.
// It returns the number of rows submitted, not the number that changed.
func reconcilePullRequests(ctx context.Context, q database.Querier, id model.RepoIdentifier, rows []model.PullRequest) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := lastByKey(rows, func(r model.PullRequest) int64 { return r.GithubID })
	params := database.UpsertPullRequestsParams{
		RepoOwner:    id.Owner,
		RepoName:     id.Name,
		GhIds:        make([]int64, len(batch)),
		Numbers:      make([]int32, len(batch)),
		Titles:       make([]string, len(batch)),
		States:       make([]string, len(batch)),
		Urls:         make([]string, len(batch)),
		CreatedAtGhs: make([]pgtype.Timestamptz, len(batch)),
		UpdatedAtGhs: make([]pgtype.Timestamptz, len(batch)),
		MergedAtGhs:  make([]pgtype.Timestamptz, len(batch)),
		AuthorLogins: make([]string, len(batch)),
	}
	for i, r := range batch {
		params.GhIds[i] = r.GithubID
		params.Numbers[i] = int32(r.Number)
		params.Titles[i] = r.Title
		params.States[i] = r.State
		params.Urls[i] = r.URL
		params.CreatedAtGhs[i] = toTimestamptz(r.CreatedAt)
		params.UpdatedAtGhs[i] = toTimestamptz(r.UpdatedAt)
		params.MergedAtGhs[i] = toTimestamptz(r.MergedAt)
		params.AuthorLogins[i] = r.AuthorLogin
	}

	if _, err := q.UpsertPullRequests(ctx, params); err != nil {
		return 0, &custom_errors.ConflictResolutionError{Kind: string(model.KindPullRequests), Rows: len(batch), Err: err}
	}
	return len(rows), nil
}

// reconcileIssues upserts one batch of issues in a single statement.
func reconcileIssues(ctx context.Context, q database.Querier, id model.RepoIdentifier, rows []model.Issue) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := lastByKey(rows, func(r model.Issue) int64 { return r.GithubID })
	params := database.UpsertIssuesParams{
		RepoOwner:    id.Owner,
		RepoName:     id.Name,
		GhIds:        make([]int64, len(batch)),
		Numbers:      make([]int32, len(batch)),
		Titles:       make([]string, len(batch)),
		States:       make([]string, len(batch)),
		Urls:         make([]string, len(batch)),
		CreatedAtGhs: make([]pgtype.Timestamptz, len(batch)),
		UpdatedAtGhs: make([]pgtype.Timestamptz, len(batch)),
		ClosedAtGhs:  make([]pgtype.Timestamptz, len(batch)),
		AuthorLogins: make([]string, len(batch)),
	}
	for i, r := range batch {
		params.GhIds[i] = r.GithubID
		params.Numbers[i] = int32(r.Number)
		params.Titles[i] = r.Title
		params.States[i] = r.State
		params.Urls[i] = r.URL
		params.CreatedAtGhs[i] = toTimestamptz(r.CreatedAt)
		params.UpdatedAtGhs[i] = toTimestamptz(r.UpdatedAt)
		params.ClosedAtGhs[i] = toTimestamptz(r.ClosedAt)
		params.AuthorLogins[i] = stringOrEmpty(r.AuthorLogin)
	}

	if _, err := q.UpsertIssues(ctx, params); err != nil {
		return 0, &custom_errors.ConflictResolutionError{Kind: string(model.KindIssues), Rows: len(batch), Err: err}
	}
	return len(rows), nil
}

// reconcileCommits upserts one batch of commits in a single statement.
func reconcileCommits(ctx context.Context, q database.Querier, id model.RepoIdentifier, rows []model.Commit) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	batch := lastByKey(rows, func(r model.Commit) string { return r.SHA })
	params := database.UpsertCommitsParams{
		RepoOwner:      id.Owner,
		RepoName:       id.Name,
		Shas:           make([]string, len(batch)),
		Urls:           make([]string, len(batch)),
		Messages:       make([]string, len(batch)),
		AuthorLogins:   make([]string, len(batch)),
		CommittedAtGhs: make([]pgtype.Timestamptz, len(batch)),
	}
	for i, r := range batch {
		params.Shas[i] = r.SHA
		params.Urls[i] = r.URL
		params.Messages[i] = r.Message
		params.AuthorLogins[i] = stringOrEmpty(r.AuthorLogin)
		params.CommittedAtGhs[i] = toTimestamptz(r.CommittedAt)
	}

	if _, err := q.UpsertCommits(ctx, params); err != nil {
		return 0, &custom_errors.ConflictResolutionError{Kind: string(model.KindCommits), Rows: len(batch), Err: err}
	}
	return len(rows), nil
}

// lastByKey drops earlier rows that share a key with a later one, keeping first-seen order.
// Postgres refuses to update the same row twice within one INSERT ... ON CONFLICT.
func lastByKey[T any, K comparable](rows []T, key func(T) K) []T {
	pos := make(map[K]int, len(rows))
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		if i, ok := pos[k]; ok {
			out[i] = r
			continue
		}
		pos[k] = len(out)
		out = append(out, r)
	}
	return out
}

func toTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

// stringOrEmpty maps a missing login to "", which the upsert stores as NULL.
func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
