// internal/model/models.go
package model

import (
	"strings"
	"time"

	custom_errors "github-signal-sync/internal/errors"
)

// Kind names one of the record kinds pulled from a repository.
type Kind string

const (
	KindPullRequests Kind = "pull_requests"
	KindIssues       Kind = "issues"
	KindCommits      Kind = "commits"
)

// RepoIdentifier holds the owner and name of a repository.
type RepoIdentifier struct {
	Owner string
	Name  string
}

func (id RepoIdentifier) String() string {
	return id.Owner + "/" + id.Name
}

// IsZero reports whether no repository is set.
func (id RepoIdentifier) IsZero() bool {
	return id.Owner == "" && id.Name == ""
}

// ParseRepoIdentifier parses an 'owner/name' string.
func ParseRepoIdentifier(s string) (RepoIdentifier, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoIdentifier{}, &custom_errors.ErrInvalidRepoFormat{Repo: s}
	}
	return RepoIdentifier{Owner: parts[0], Name: parts[1]}, nil
}

// Repository is the registration record of a repository.
type Repository struct {
	ID        int64     `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// PullRequest is the canonical row of a pull request, keyed by (RepoOwner, RepoName, GithubID).
type PullRequest struct {
	RepoOwner   string
	RepoName    string
	GithubID    int64
	Number      int
	Title       string
	State       string
	URL         string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	MergedAt    *time.Time
	AuthorLogin string
}

// Issue is the canonical row of an issue, keyed by (RepoOwner, RepoName, GithubID).
type Issue struct {
	RepoOwner   string
	RepoName    string
	GithubID    int64
	Number      int
	Title       string
	State       string
	URL         string
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	ClosedAt    *time.Time
	AuthorLogin *string
}

// Commit is the canonical row of a commit, keyed by (RepoOwner, RepoName, SHA).
type Commit struct {
	RepoOwner   string
	RepoName    string
	SHA         string
	URL         string
	Message     string
	AuthorLogin *string
	CommittedAt *time.Time
}

// Counts holds one number per record kind.
type Counts struct {
	PullRequests int64 `json:"pull_requests"`
	Issues       int64 `json:"issues"`
	Commits      int64 `json:"commits"`
}

// SyncResult reports how many rows each kind submitted during one sync run.
type SyncResult struct {
	Repo   string `json:"repo"`
	Stored Counts `json:"stored"`
}

// Summary reports the stored totals of a repository.
type Summary struct {
	Repo   string `json:"repo"`
	Totals Counts `json:"totals"`
}
