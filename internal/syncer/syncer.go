// internal/syncer/syncer.go
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gogithub "github.com/google/go-github/v62/github"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github-signal-sync/internal/database"
	"github-signal-sync/internal/errutil"
	"github-signal-sync/internal/github"
	"github-signal-sync/internal/model"
)

// Fetcher lists the raw records of a repository. *github.Client implements it.
type Fetcher interface {
	ListPullRequests(ctx context.Context, owner, name string) ([]*gogithub.PullRequest, error)
	ListIssues(ctx context.Context, owner, name string) ([]*gogithub.Issue, error)
	ListCommits(ctx context.Context, owner, name string) ([]*gogithub.RepositoryCommit, error)
}

// DB is the connection the syncer runs its queries and transactions on. *pgxpool.Pool implements it.
type DB interface {
	database.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Syncer orchestrates the fetching and storing of data.
type Syncer struct {
	db         DB
	fetcher    Fetcher
	logger     *slog.Logger
	newQuerier func(database.DBTX) database.Querier
	withTx     func(pgx.Tx) database.Querier
}

// NewSyncer creates a new Syncer instance.
func NewSyncer(db DB, fetcher Fetcher, logger *slog.Logger) *Syncer {
	return &Syncer{
		db:      db,
		fetcher: fetcher,
		logger:  logger,
		newQuerier: func(db database.DBTX) database.Querier {
			return database.New(db)
		},
		withTx: func(tx pgx.Tx) database.Querier {
			return database.New(db).WithTx(tx)
		},
	}
}

type batch struct {
	pullRequests []model.PullRequest
	issues       []model.Issue
	commits      []model.Commit
	skipped      int
}

// Sync pulls every pull request, issue and commit of a repository and reconciles them into the
// store in one transaction. Nothing is written unless all three kinds were fetched and stored.
func (s *Syncer) Sync(ctx context.Context, id model.RepoIdentifier) (model.SyncResult, error) {
	logger := s.logger.With("run_id", uuid.NewString(), "owner", id.Owner, "repo", id.Name)
	logger.InfoContext(ctx, "Syncing repository")
	started := time.Now()

	b, err := s.fetch(ctx, id)
	if err != nil {
		return model.SyncResult{}, err
	}
	logger.InfoContext(ctx, "Fetched repository signals",
		"pull_requests", len(b.pullRequests),
		"issues", len(b.issues),
		"commits", len(b.commits),
		"skipped_issues", b.skipped,
	)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback is a no-op once the transaction is committed.
	defer tx.Rollback(ctx)

	q := s.withTx(tx)

	prs, err := reconcilePullRequests(ctx, q, id, b.pullRequests)
	if err != nil {
		return model.SyncResult{}, err
	}
	issues, err := reconcileIssues(ctx, q, id, b.issues)
	if err != nil {
		return model.SyncResult{}, err
	}
	commits, err := reconcileCommits(ctx, q, id, b.commits)
	if err != nil {
		return model.SyncResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.SyncResult{}, fmt.Errorf("failed to commit sync of %s: %w", id, err)
	}

	result := model.SyncResult{
		Repo: id.String(),
		Stored: model.Counts{
			PullRequests: int64(prs),
			Issues:       int64(issues),
			Commits:      int64(commits),
		},
	}
	logger.InfoContext(ctx, "Sync finished",
		"pull_requests", prs,
		"issues", issues,
		"commits", commits,
		"duration", time.Since(started).String(),
	)
	return result, nil
}

// fetch lists the three kinds concurrently and normalizes them.
// The first failing listing cancels the others.
func (s *Syncer) fetch(ctx context.Context, id model.RepoIdentifier) (batch, error) {
	var (
		rawPRs     []*gogithub.PullRequest
		rawIssues  []*gogithub.Issue
		rawCommits []*gogithub.RepositoryCommit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawPRs, err = s.fetcher.ListPullRequests(gctx, id.Owner, id.Name)
		return err
	})
	g.Go(func() error {
		var err error
		rawIssues, err = s.fetcher.ListIssues(gctx, id.Owner, id.Name)
		return err
	})
	g.Go(func() error {
		var err error
		rawCommits, err = s.fetcher.ListCommits(gctx, id.Owner, id.Name)
		return err
	})
	if err := g.Wait(); err != nil {
		return batch{}, err
	}

	var b batch
	b.pullRequests = make([]model.PullRequest, 0, len(rawPRs))
	for _, pr := range rawPRs {
		b.pullRequests = append(b.pullRequests, github.NormalizePullRequest(pr, id.Owner, id.Name))
	}
	b.issues = make([]model.Issue, 0, len(rawIssues))
	for _, it := range rawIssues {
		row, ok := github.NormalizeIssue(it, id.Owner, id.Name)
		if !ok {
			b.skipped++
			continue
		}
		b.issues = append(b.issues, row)
	}
	b.commits = make([]model.Commit, 0, len(rawCommits))
	for _, c := range rawCommits {
		b.commits = append(b.commits, github.NormalizeCommit(c, id.Owner, id.Name))
	}
	return b, nil
}

// Summary counts the stored rows of a repository.
func (s *Syncer) Summary(ctx context.Context, id model.RepoIdentifier) (model.Summary, error) {
	row, err := s.newQuerier(s.db).CountSignals(ctx, database.CountSignalsParams{
		RepoOwner: id.Owner,
		RepoName:  id.Name,
	})
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to count signals of %s: %w", id, err)
	}

	return model.Summary{
		Repo: id.String(),
		Totals: model.Counts{
			PullRequests: row.PullRequests,
			Issues:       row.Issues,
			Commits:      row.Commits,
		},
	}, nil
}

// RegisterRepository records a repository. Registering it again returns the existing row.
func (s *Syncer) RegisterRepository(ctx context.Context, id model.RepoIdentifier) (model.Repository, error) {
	repo, err := s.newQuerier(s.db).RegisterRepository(ctx, database.RegisterRepositoryParams{
		Owner: id.Owner,
		Name:  id.Name,
	})
	if err != nil {
		return model.Repository{}, fmt.Errorf("failed to register %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Repository registered", "owner", repo.Owner, "repo", repo.Name, "repo_id", repo.ID)

	return model.Repository{
		ID:        repo.ID,
		Owner:     repo.Owner,
		Name:      repo.Name,
		CreatedAt: repo.CreatedAt.Time,
	}, nil
}

// Start syncs the repository immediately and then once per interval until ctx is done.
func (s *Syncer) Start(ctx context.Context, id model.RepoIdentifier, interval time.Duration) {
	s.logger.Info("Starting syncer", "owner", id.Owner, "repo", id.Name, "interval", interval.String())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.runSyncCycle(ctx, id)

	for {
		select {
		case <-ticker.C:
			s.runSyncCycle(ctx, id)
		case <-ctx.Done():
			s.logger.Info("Syncer shutting down", "reason", ctx.Err())
			return
		}
	}
}

func (s *Syncer) runSyncCycle(ctx context.Context, id model.RepoIdentifier) {
	if _, err := s.Sync(ctx, id); err != nil && !errors.Is(err, context.Canceled) {
		errutil.HandleError(ctx, s.logger, "Scheduled sync failed", err)
	}
}
