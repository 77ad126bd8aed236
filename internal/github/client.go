// internal/github/client.go
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github-signal-sync/internal/errors"
	"github-signal-sync/internal/model"
)

const (
	// DefaultPageSize is the largest page the GitHub list endpoints accept.
	DefaultPageSize = 100
	// DefaultRequestTimeout bounds a single page request.
	DefaultRequestTimeout = 30 * time.Second

	userAgent = "github-signal-sync"
)

// Options configures how the client reaches the GitHub API.
type Options struct {
	Token string

	AppID             int64
	AppInstallationID int64
	AppPrivateKey     string

	BaseURL        string
	PageSize       int
	RequestTimeout time.Duration
}

// Client is a wrapper around the go-github client.
type Client struct {
	gh       *github.Client
	logger   *slog.Logger
	pageSize int
}

// NewClient creates and configures a new Client instance.
// A token takes precedence over GitHub App credentials; with neither, requests are anonymous.
func NewClient(opts Options, logger *slog.Logger) (*Client, error) {
	httpClient, err := newHTTPClient(opts)
	if err != nil {
		return nil, err
	}

	gh := github.NewClient(httpClient)
	gh.UserAgent = userAgent
	if opts.BaseURL != "" {
		if err := setBaseURL(gh, opts.BaseURL); err != nil {
			return nil, err
		}
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return &Client{
		gh:       gh,
		logger:   logger,
		pageSize: pageSize,
	}, nil
}

func newHTTPClient(opts Options) (*http.Client, error) {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	base := &timestampTransport{base: http.DefaultTransport}

	switch {
	case opts.Token != "":
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Transport: base})
		tc := oauth2.NewClient(ctx, ts)
		tc.Timeout = timeout
		return tc, nil

	case opts.AppID != 0:
		itr, err := ghinstallation.New(base, opts.AppID, opts.AppInstallationID, []byte(opts.AppPrivateKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create github app transport: %w", err)
		}
		// Installation tokens come from the same API host as the listings.
		if opts.BaseURL != "" {
			itr.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
		}
		return &http.Client{Transport: itr, Timeout: timeout}, nil

	default:
		return &http.Client{Transport: base, Timeout: timeout}, nil
	}
}

func setBaseURL(gh *github.Client, raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid github api url %q: %w", raw, err)
	}
	gh.BaseURL = u
	return nil
}

// ListPullRequests fetches every pull request of a repository, in any state.
func (c *Client) ListPullRequests(ctx context.Context, owner, name string) ([]*github.PullRequest, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/pulls", owner, name)
	return fetchAll(ctx, c, model.KindPullRequests, endpoint, func(ctx context.Context, lo github.ListOptions) ([]*github.PullRequest, *github.Response, error) {
		return c.gh.PullRequests.List(ctx, owner, name, &github.PullRequestListOptions{
			State:       "all",
			Sort:        "updated",
			ListOptions: lo,
		})
	})
}

// ListIssues fetches every issue of a repository, in any state.
// The listing also contains pull requests; see NormalizeIssue.
func (c *Client) ListIssues(ctx context.Context, owner, name string) ([]*github.Issue, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/issues", owner, name)
	return fetchAll(ctx, c, model.KindIssues, endpoint, func(ctx context.Context, lo github.ListOptions) ([]*github.Issue, *github.Response, error) {
		return c.gh.Issues.ListByRepo(ctx, owner, name, &github.IssueListByRepoOptions{
			State:       "all",
			Sort:        "updated",
			ListOptions: lo,
		})
	})
}

// ListCommits fetches every commit reachable from the default branch.
func (c *Client) ListCommits(ctx context.Context, owner, name string) ([]*github.RepositoryCommit, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/commits", owner, name)
	return fetchAll(ctx, c, model.KindCommits, endpoint, func(ctx context.Context, lo github.ListOptions) ([]*github.RepositoryCommit, *github.Response, error) {
		return c.gh.Repositories.ListCommits(ctx, owner, name, &github.CommitsListOptions{
			ListOptions: lo,
		})
	})
}

type listPageFunc[T any] func(ctx context.Context, opts github.ListOptions) ([]T, *github.Response, error)

// fetchAll requests pages 1, 2, ... until a page comes back empty or is not a collection.
// The Link header is not consulted, so every kind terminates the same way.
func fetchAll[T any](ctx context.Context, c *Client, kind model.Kind, endpoint string, list listPageFunc[T]) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		c.logger.Debug("Fetching page", "kind", kind, "endpoint", endpoint, "page", page)

		items, resp, err := list(ctx, github.ListOptions{Page: page, PerPage: c.pageSize})
		if err != nil {
			if notACollection(resp, err) {
				c.logger.Warn("Page is not a collection, ending listing", "kind", kind, "endpoint", endpoint, "page", page)
				break
			}
			return nil, newTransportError(kind, endpoint, page, resp, err)
		}
		if len(items) == 0 {
			break
		}
		all = append(all, items...)
	}

	c.logger.Debug("Fetched listing", "kind", kind, "endpoint", endpoint, "count", len(all))
	return all, nil
}

// notACollection reports whether a successful response carried a body that does not decode into a list.
func notACollection(resp *github.Response, err error) bool {
	if resp == nil || resp.Response == nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

func newTransportError(kind model.Kind, endpoint string, page int, resp *github.Response, err error) error {
	te := &custom_errors.TransportError{
		Kind:     string(kind),
		Endpoint: endpoint,
		Page:     page,
		Err:      err,
	}
	if resp != nil && resp.Response != nil {
		te.StatusCode = resp.StatusCode
	}

	var ghErr *github.ErrorResponse
	if te.StatusCode == 0 && errors.As(err, &ghErr) && ghErr.Response != nil {
		te.StatusCode = ghErr.Response.StatusCode
	}
	return te
}
