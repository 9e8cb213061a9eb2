package github_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sgaunet/issue-manager/pkg/github"
	"github.com/sgaunet/issue-manager/pkg/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*github.Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)
	return github.NewClient("secret", "issue-manager-tests", github.WithBaseURL(ts.URL+"/")), &hits
}

func TestAddIssue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/hello/issues", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "issue-manager-tests", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]string{"title": "Bug", "body": "Crash"}, payload)

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number":7,"title":"Bug","body":"Crash","state":"open"}`)
	})

	issue, err := client.AddIssue(context.Background(), "octo/hello",
		tracker.CreateIssueRequest{Title: "Bug", Description: "Crash"})
	require.NoError(t, err)
	assert.Equal(t, tracker.Issue{ID: 7, Name: "Bug", Description: "Crash"}, issue)
}

func TestAddIssue_NullBodyIsEmptyDescription(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number":8,"title":"Bug","body":null}`)
	})

	issue, err := client.AddIssue(context.Background(), "octo/hello", tracker.CreateIssueRequest{Title: "Bug"})
	require.NoError(t, err)
	assert.Equal(t, "", issue.Description)
}

func TestUpdateIssue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/octo/hello/issues/12", r.URL.Path)
		fmt.Fprint(w, `{"number":12,"title":"New","body":"Text"}`)
	})

	issue, err := client.UpdateIssue(context.Background(), "octo/hello",
		tracker.UpdateIssueRequest{ID: 12, Title: "New", Description: "Text"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), issue.ID)
	assert.Equal(t, "New", issue.Name)
}

func TestCloseIssue(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/repos/octo/hello/issues/3", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"state":"closed"}`, string(body))
		fmt.Fprint(w, `{"number":3,"title":"Done","body":"","state":"closed"}`)
	})

	issue, err := client.CloseIssue(context.Background(), "octo/hello", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), issue.ID)
}

func TestListIssues(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/octo/hello/issues", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("per_page"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		fmt.Fprint(w, `[{"number":1,"title":"A","body":"a"},{"number":2,"title":"B","body":null}]`)
	})

	issues, err := client.ListIssues(context.Background(), "octo/hello", 2, 50)
	require.NoError(t, err)
	assert.Equal(t, []tracker.Issue{{ID: 1, Name: "A", Description: "a"}, {ID: 2, Name: "B"}}, issues)
}

func TestListIssues_EmptyAndNull(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		t.Run(body, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, body)
			})
			issues, err := client.ListIssues(context.Background(), "octo/hello", 1, 50)
			require.NoError(t, err)
			assert.NotNil(t, issues)
			assert.Empty(t, issues)
		})
	}
}

func TestInvalidRepositoryMakesNoRequest(t *testing.T) {
	client, hits := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	for _, repo := range []string{"", "noslash", "a/b/c", "/name", "owner/"} {
		t.Run(repo, func(t *testing.T) {
			_, err := client.AddIssue(ctx, repo, tracker.CreateIssueRequest{Title: "x"})
			require.ErrorIs(t, err, tracker.ErrInvalidRepository)
			_, err = client.UpdateIssue(ctx, repo, tracker.UpdateIssueRequest{ID: 1})
			require.ErrorIs(t, err, tracker.ErrInvalidRepository)
			_, err = client.CloseIssue(ctx, repo, 1)
			require.ErrorIs(t, err, tracker.ErrInvalidRepository)
			_, err = client.ListIssues(ctx, repo, 1, 50)
			require.ErrorIs(t, err, tracker.ErrInvalidRepository)
		})
	}
	assert.Equal(t, int32(0), hits.Load())
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind tracker.Kind
		wantMsg  string
	}{
		{"not found with message", http.StatusNotFound, `{"message":"Not Found"}`, tracker.KindRemoteRejected, "Not Found"},
		{"validation failed", http.StatusUnprocessableEntity, `{"message":"Validation Failed","errors":[]}`, tracker.KindRemoteRejected, "Validation Failed"},
		{"html error page", http.StatusBadGateway, `<html>oops</html>`, tracker.KindTransportFailure, tracker.MsgSendFailed},
		{"empty error body", http.StatusInternalServerError, ``, tracker.KindTransportFailure, tracker.MsgSendFailed},
		{"malformed success", http.StatusCreated, `{"number":`, tracker.KindMalformedResponse, "unable to parse the response"},
		{"null success", http.StatusCreated, `null`, tracker.KindMalformedResponse, "unable to parse the response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			_, err := client.AddIssue(context.Background(), "octo/hello", tracker.CreateIssueRequest{Title: "x"})
			require.Error(t, err)
			var te *tracker.Error
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.wantKind, te.Kind)
			assert.Equal(t, tt.wantMsg, te.Message)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	client := github.NewClient("secret", "app", github.WithBaseURL(url))
	_, err := client.ListIssues(context.Background(), "octo/hello", 1, 50)
	require.ErrorIs(t, err, tracker.ErrTransportFailure)
}

func TestCancelledContext(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListIssues(ctx, "octo/hello", 1, 50)
	require.ErrorIs(t, err, context.Canceled)
	var te *tracker.Error
	assert.False(t, errors.As(err, &te))
}

func TestThrottleTracksQuota(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "4999")
		fmt.Fprint(w, `[]`)
	})
	_, err := client.ListIssues(context.Background(), "octo/hello", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(4999), client.Throttle().Remaining())
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestWithHTTPClient(t *testing.T) {
	var called bool
	client := github.NewClient("k", "", github.WithHTTPClient(doerFunc(func(r *http.Request) (*http.Response, error) {
		called = true
		assert.Equal(t, "issue-manager", r.Header.Get("User-Agent"))
		assert.Equal(t, "https://api.github.com/repos/a/b/issues/1", r.URL.String())
		return nil, errors.New("dial tcp: refused")
	})))

	_, err := client.CloseIssue(context.Background(), "a/b", 1)
	require.ErrorIs(t, err, tracker.ErrTransportFailure)
	assert.True(t, called)
}
