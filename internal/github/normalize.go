package github

import (
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	"github-signal-sync/internal/model"
)

const defaultState = "open"

// NormalizePullRequest translates a github.PullRequest to our internal model.PullRequest.
func NormalizePullRequest(pr *github.PullRequest, owner, repo string) model.PullRequest {
	return model.PullRequest{
		RepoOwner:   owner,
		RepoName:    repo,
		GithubID:    pr.GetID(),
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		State:       stateOrDefault(pr.State),
		URL:         pr.GetHTMLURL(),
		CreatedAt:   toTime(pr.CreatedAt),
		UpdatedAt:   toTime(pr.UpdatedAt),
		MergedAt:    toTime(pr.MergedAt),
		AuthorLogin: pr.GetUser().GetLogin(),
	}
}

// NormalizeIssue translates a github.Issue to our internal model.Issue.
// It returns false for entries of the issue listing that are pull requests.
func NormalizeIssue(it *github.Issue, owner, repo string) (model.Issue, bool) {
	if it.IsPullRequest() {
		return model.Issue{}, false
	}

	return model.Issue{
		RepoOwner:   owner,
		RepoName:    repo,
		GithubID:    it.GetID(),
		Number:      it.GetNumber(),
		Title:       it.GetTitle(),
		State:       stateOrDefault(it.State),
		URL:         it.GetHTMLURL(),
		CreatedAt:   toTime(it.CreatedAt),
		UpdatedAt:   toTime(it.UpdatedAt),
		ClosedAt:    toTime(it.ClosedAt),
		AuthorLogin: login(it.User),
	}, true
}

// NormalizeCommit translates a github.RepositoryCommit to our internal model.Commit.
// The commit time comes from the nested git author, not the wrapper object.
func NormalizeCommit(c *github.RepositoryCommit, owner, repo string) model.Commit {
	var committedAt *time.Time
	if author := c.GetCommit().GetAuthor(); author != nil {
		committedAt = toTime(author.Date)
	}

	return model.Commit{
		RepoOwner:   owner,
		RepoName:    repo,
		SHA:         c.GetSHA(),
		URL:         c.GetHTMLURL(),
		Message:     strings.TrimSpace(c.GetCommit().GetMessage()),
		AuthorLogin: login(c.Author),
		CommittedAt: committedAt,
	}
}

func stateOrDefault(s *string) string {
	if s == nil || *s == "" {
		return defaultState
	}
	return *s
}

func login(u *github.User) *string {
	if u == nil || u.Login == nil {
		return nil
	}
	l := *u.Login
	return &l
}

func toTime(ts *github.Timestamp) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.UTC()
	return &t
}
