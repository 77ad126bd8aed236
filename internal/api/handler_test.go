package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	custom_errors "github-signal-sync/internal/errors"
	"github-signal-sync/internal/model"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Sync(ctx context.Context, id model.RepoIdentifier) (model.SyncResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.SyncResult), args.Error(1)
}

func (m *MockService) Summary(ctx context.Context, id model.RepoIdentifier) (model.Summary, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Summary), args.Error(1)
}

func (m *MockService) RegisterRepository(ctx context.Context, id model.RepoIdentifier) (model.Repository, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Repository), args.Error(1)
}

var acme = model.RepoIdentifier{Owner: "acme", Name: "widgets"}

func serve(t *testing.T, svc Service, defaultRepo model.RepoIdentifier, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter(svc, defaultRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	for _, path := range []string{"/", "/api/health"} {
		rec := serve(t, new(MockService), model.RepoIdentifier{}, http.MethodGet, path)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String(), path)
	}
}

func TestSyncDefault(t *testing.T) {
	t.Run("syncs the configured repository", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Sync", mock.Anything, acme).Return(model.SyncResult{
			Repo:   "acme/widgets",
			Stored: model.Counts{PullRequests: 2, Issues: 3, Commits: 4},
		}, nil).Once()

		rec := serve(t, svc, acme, http.MethodPost, "/api/sync/github")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"repo":"acme/widgets","stored":{"pull_requests":2,"issues":3,"commits":4}}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("rejects the request without a configured repository", func(t *testing.T) {
		svc := new(MockService)

		rec := serve(t, svc, model.RepoIdentifier{}, http.MethodPost, "/api/sync/github")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody[ErrorResponse](t, rec)
		assert.Equal(t, ErrCodeNoDefaultRepository, body.Error.Code)
		svc.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
	})

	t.Run("maps a fetch failure to bad gateway", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Sync", mock.Anything, acme).Return(model.SyncResult{}, &custom_errors.TransportError{
			Kind: "commits", Endpoint: "/repos/acme/widgets/commits", Page: 3, StatusCode: 500, Err: errors.New("boom"),
		}).Once()

		rec := serve(t, svc, acme, http.MethodPost, "/api/sync/github")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		body := decodeBody[ErrorResponse](t, rec)
		assert.Equal(t, ErrCodeUpstream, body.Error.Code)
		assert.Contains(t, body.Error.Message, "commits")
		assert.Contains(t, body.Error.Message, "page 3")
	})

	t.Run("maps a store failure to internal error", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Sync", mock.Anything, acme).Return(model.SyncResult{}, &custom_errors.ConflictResolutionError{
			Kind: "issues", Rows: 2, Err: errors.New("deadlock detected"),
		}).Once()

		rec := serve(t, svc, acme, http.MethodPost, "/api/sync/github")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody[ErrorResponse](t, rec)
		assert.Equal(t, ErrCodeInternal, body.Error.Code)
		assert.NotContains(t, rec.Body.String(), "deadlock")
	})
}

func TestRepoRoutes(t *testing.T) {
	t.Run("sync uses the path repository", func(t *testing.T) {
		svc := new(MockService)
		other := model.RepoIdentifier{Owner: "octo", Name: "hello"}
		svc.On("Sync", mock.Anything, other).Return(model.SyncResult{Repo: "octo/hello"}, nil).Once()

		rec := serve(t, svc, acme, http.MethodPost, "/api/repos/octo/hello/sync")

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("summary", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Summary", mock.Anything, acme).Return(model.Summary{
			Repo:   "acme/widgets",
			Totals: model.Counts{PullRequests: 1, Issues: 0, Commits: 7},
		}, nil).Twice()

		for _, path := range []string{"/api/signals/summary", "/api/repos/acme/widgets/summary"} {
			rec := serve(t, svc, acme, http.MethodGet, path)

			assert.Equal(t, http.StatusOK, rec.Code, path)
			assert.JSONEq(t, `{"repo":"acme/widgets","totals":{"pull_requests":1,"issues":0,"commits":7}}`, rec.Body.String(), path)
		}
		svc.AssertExpectations(t)
	})

	t.Run("register", func(t *testing.T) {
		svc := new(MockService)
		created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		svc.On("RegisterRepository", mock.Anything, acme).Return(model.Repository{
			ID: 3, Owner: "acme", Name: "widgets", CreatedAt: created,
		}, nil).Once()

		rec := serve(t, svc, model.RepoIdentifier{}, http.MethodPut, "/api/repos/acme/widgets")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":3,"owner":"acme","name":"widgets","created_at":"2026-02-01T00:00:00Z"}`, rec.Body.String())
	})

	t.Run("summary failure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Summary", mock.Anything, acme).Return(model.Summary{}, errors.New("connection refused")).Once()

		rec := serve(t, svc, model.RepoIdentifier{}, http.MethodGet, "/api/repos/acme/widgets/summary")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
