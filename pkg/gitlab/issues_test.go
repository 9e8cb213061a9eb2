package gitlab_test

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

	"github.com/sgaunet/issue-manager/pkg/gitlab"
	"github.com/sgaunet/issue-manager/pkg/gitlab/mocks"
	"github.com/sgaunet/issue-manager/pkg/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gitlabapi "gitlab.com/gitlab-org/api/client-go"
)

func TestAddIssue_Mock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockIssues := &mocks.IssuesServiceMock{
			CreateIssueFunc: func(pid any, opt *gitlabapi.CreateIssueOptions, _ ...gitlabapi.RequestOptionFunc) (*gitlabapi.Issue, *gitlabapi.Response, error) {
				assert.Equal(t, "group/project", pid)
				assert.Equal(t, "Bug", *opt.Title)
				assert.Equal(t, "Crash", *opt.Description)
				return &gitlabapi.Issue{IID: 4, Title: "Bug", Description: "Crash"}, &gitlabapi.Response{}, nil
			},
		}

		client := gitlab.NewClientWithIssuesService(mockIssues)
		issue, err := client.AddIssue(ctx, "group/project", tracker.CreateIssueRequest{Title: "Bug", Description: "Crash"})

		require.NoError(t, err)
		assert.Equal(t, tracker.Issue{ID: 4, Name: "Bug", Description: "Crash"}, issue)
		assert.Len(t, mockIssues.CreateIssueCalls(), 1)
	})

	t.Run("NilIssueIsMalformed", func(t *testing.T) {
		mockIssues := &mocks.IssuesServiceMock{
			CreateIssueFunc: func(any, *gitlabapi.CreateIssueOptions, ...gitlabapi.RequestOptionFunc) (*gitlabapi.Issue, *gitlabapi.Response, error) {
				return nil, &gitlabapi.Response{}, nil
			},
		}

		_, err := gitlab.NewClientWithIssuesService(mockIssues).AddIssue(ctx, "1", tracker.CreateIssueRequest{Title: "x"})
		require.ErrorIs(t, err, tracker.ErrMalformedResponse)
	})

	t.Run("ErrorResponseWithMessage", func(t *testing.T) {
		mockIssues := &mocks.IssuesServiceMock{
			CreateIssueFunc: func(any, *gitlabapi.CreateIssueOptions, ...gitlabapi.RequestOptionFunc) (*gitlabapi.Issue, *gitlabapi.Response, error) {
				return nil, nil, &gitlabapi.ErrorResponse{Body: []byte(`{"message":"403 Forbidden"}`)}
			},
		}

		_, err := gitlab.NewClientWithIssuesService(mockIssues).AddIssue(ctx, "1", tracker.CreateIssueRequest{Title: "x"})
		var te *tracker.Error
		require.True(t, errors.As(err, &te))
		assert.Equal(t, tracker.KindRemoteRejected, te.Kind)
		assert.Equal(t, "403 Forbidden", te.Message)
	})

	t.Run("PlainErrorIsTransportFailure", func(t *testing.T) {
		mockIssues := &mocks.IssuesServiceMock{
			CreateIssueFunc: func(any, *gitlabapi.CreateIssueOptions, ...gitlabapi.RequestOptionFunc) (*gitlabapi.Issue, *gitlabapi.Response, error) {
				return nil, nil, errors.New("dial tcp: connection refused")
			},
		}

		_, err := gitlab.NewClientWithIssuesService(mockIssues).AddIssue(ctx, "1", tracker.CreateIssueRequest{Title: "x"})
		require.ErrorIs(t, err, tracker.ErrTransportFailure)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("DecodeErrorIsMalformed", func(t *testing.T) {
		mockIssues := &mocks.IssuesServiceMock{
			CreateIssueFunc: func(any, *gitlabapi.CreateIssueOptions, ...gitlabapi.RequestOptionFunc) (*gitlabapi.Issue, *gitlabapi.Response, error) {
				var v map[string]any
				err := json.Unmarshal([]byte("not json"), &v)
				return nil, &gitlabapi.Response{}, err
			},
		}

		_, err := gitlab.NewClientWithIssuesService(mockIssues).AddIssue(ctx, "1", tracker.CreateIssueRequest{Title: "x"})
		require.ErrorIs(t, err, tracker.ErrMalformedResponse)
	})
}

func TestCloseIssue_Mock(t *testing.T) {
	mockIssues := &mocks.IssuesServiceMock{
		UpdateIssueFunc: func(pid any, iid int64, opt *gitlabapi.UpdateIssueOptions, _ ...gitlabapi.RequestOptionFunc) (*gitlabapi.Issue, *gitlabapi.Response, error) {
			assert.Equal(t, int64(9), iid)
			require.NotNil(t, opt.StateEvent)
			assert.Equal(t, "close", *opt.StateEvent)
			assert.Nil(t, opt.Title)
			return &gitlabapi.Issue{IID: 9, Title: "Done", State: "closed"}, &gitlabapi.Response{}, nil
		},
	}

	issue, err := gitlab.NewClientWithIssuesService(mockIssues).CloseIssue(context.Background(), "42", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), issue.ID)
	require.Len(t, mockIssues.UpdateIssueCalls(), 1)
}

func TestListIssues_Mock_PageOptions(t *testing.T) {
	mockIssues := &mocks.IssuesServiceMock{
		ListProjectIssuesFunc: func(pid any, opt *gitlabapi.ListProjectIssuesOptions, _ ...gitlabapi.RequestOptionFunc) ([]*gitlabapi.Issue, *gitlabapi.Response, error) {
			assert.Equal(t, "group/project", pid)
			assert.Equal(t, int64(2), opt.Page)
			assert.Equal(t, int64(20), opt.PerPage)
			require.NotNil(t, opt.Scope)
			assert.Equal(t, "all", *opt.Scope)
			return []*gitlabapi.Issue{{IID: 21, Title: "A"}, nil}, &gitlabapi.Response{}, nil
		},
	}

	issues, err := gitlab.NewClientWithIssuesService(mockIssues).ListIssues(context.Background(), "group/project", 2, 20)
	require.NoError(t, err)
	assert.Equal(t, []tracker.Issue{{ID: 21, Name: "A"}}, issues)
}

func TestInvalidRepository_NoCall(t *testing.T) {
	mockIssues := &mocks.IssuesServiceMock{}
	client := gitlab.NewClientWithIssuesService(mockIssues)
	ctx := context.Background()

	for _, repo := range []string{"", "   "} {
		_, err := client.AddIssue(ctx, repo, tracker.CreateIssueRequest{Title: "x"})
		require.ErrorIs(t, err, tracker.ErrInvalidRepository)
		_, err = client.UpdateIssue(ctx, repo, tracker.UpdateIssueRequest{ID: 1})
		require.ErrorIs(t, err, tracker.ErrInvalidRepository)
		_, err = client.CloseIssue(ctx, repo, 1)
		require.ErrorIs(t, err, tracker.ErrInvalidRepository)
		_, err = client.ListIssues(ctx, repo, 1, 50)
		require.ErrorIs(t, err, tracker.ErrInvalidRepository)
	}
	// Any call would have panicked on the nil mock funcs.
	assert.Empty(t, mockIssues.CreateIssueCalls())
}

// newServer starts a fake GitLab API and returns a client pointed at it.
func newServer(t *testing.T, handler http.HandlerFunc) (*gitlab.Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	client, err := gitlab.NewClient("oauth-token", gitlab.WithBaseURL(ts.URL), gitlab.WithUserAgent("issue-manager-tests"))
	require.NoError(t, err)
	return client, &hits
}

func TestAddIssue_HTTP(t *testing.T) {
	client, hits := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v4/projects/42/issues", r.URL.Path)
		assert.Equal(t, "Bearer oauth-token", r.Header.Get("Authorization"))
		assert.Equal(t, "issue-manager-tests", r.Header.Get("User-Agent"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Bug", payload["title"])
		assert.Equal(t, "Crash", payload["description"])

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":1001,"iid":5,"title":"Bug","description":"Crash","state":"opened"}`)
	})

	issue, err := client.AddIssue(context.Background(), "42", tracker.CreateIssueRequest{Title: "Bug", Description: "Crash"})
	require.NoError(t, err)
	assert.Equal(t, tracker.Issue{ID: 5, Name: "Bug", Description: "Crash"}, issue)
	assert.Equal(t, int32(1), hits.Load())
}

func TestAddIssue_HTTP_PathIsEncoded(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.RequestURI, "/api/v4/projects/group%2Fproject/issues")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":1001,"iid":1,"title":"t"}`)
	})

	_, err := client.AddIssue(context.Background(), "group/project", tracker.CreateIssueRequest{Title: "t"})
	require.NoError(t, err)
}

func TestUpdateAndClose_HTTP(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v4/projects/42/issues/5", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		if _, ok := payload["state_event"]; ok {
			assert.Equal(t, "close", payload["state_event"])
			fmt.Fprint(w, `{"id":1005,"iid":5,"title":"Bug","description":"Crash","state":"closed"}`)
			return
		}
		assert.Equal(t, "New", payload["title"])
		fmt.Fprint(w, `{"id":1005,"iid":5,"title":"New","description":"Text"}`)
	})
	ctx := context.Background()

	issue, err := client.UpdateIssue(ctx, "42", tracker.UpdateIssueRequest{ID: 5, Title: "New", Description: "Text"})
	require.NoError(t, err)
	assert.Equal(t, "New", issue.Name)

	issue, err = client.CloseIssue(ctx, "42", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), issue.ID)
}

func TestListIssues_HTTP(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v4/projects/42/issues", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "all", q.Get("scope"))
		assert.Equal(t, "3", q.Get("page"))
		assert.Equal(t, "50", q.Get("per_page"))
		w.Header().Set("RateLimit-Remaining", "1999")
		fmt.Fprint(w, `[{"id":1001,"iid":1,"title":"A","description":"a"},{"id":1002,"iid":2,"title":"B","description":null}]`)
	})

	issues, err := client.ListIssues(context.Background(), "42", 3, 50)
	require.NoError(t, err)
	assert.Equal(t, []tracker.Issue{{ID: 1, Name: "A", Description: "a"}, {ID: 2, Name: "B"}}, issues)
	assert.Equal(t, int64(1999), client.Throttle().Remaining())
}

func TestListIssues_HTTP_EmptyPage(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	issues, err := client.ListIssues(context.Background(), "42", 1, 50)
	require.NoError(t, err)
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestErrorClassification_HTTP(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind tracker.Kind
		wantMsg  string
	}{
		{"project not found", http.StatusNotFound, `{"message":"404 Project Not Found"}`, tracker.KindRemoteRejected, "404 Project Not Found"},
		{"validation object", http.StatusBadRequest, `{"message":{"title":["is missing"]}}`, tracker.KindRemoteRejected, `{"title":["is missing"]}`},
		{"no message", http.StatusUnauthorized, `{"error":"invalid_token"}`, tracker.KindTransportFailure, tracker.MsgSendFailed},
		{"truncated success", http.StatusCreated, `{"iid":`, tracker.KindMalformedResponse, "unable to parse the response"},
		{"garbage success", http.StatusCreated, `garbage`, tracker.KindMalformedResponse, "unable to parse the response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := client.AddIssue(context.Background(), "42", tracker.CreateIssueRequest{Title: "x"})
			var te *tracker.Error
			require.True(t, errors.As(err, &te), "got %v", err)
			assert.Equal(t, tt.wantKind, te.Kind)
			assert.Equal(t, tt.wantMsg, te.Message)
		})
	}
}

func TestMissingIssueID_HTTP(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		client, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"iid":1,"title":"t"}`)
		})

		_, err := client.AddIssue(ctx, "42", tracker.CreateIssueRequest{Title: "t"})
		var te *tracker.Error
		require.True(t, errors.As(err, &te), "got %v", err)
		assert.Equal(t, tracker.KindMalformedResponse, te.Kind)
	})

	t.Run("List", func(t *testing.T) {
		client, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `[{"id":1001,"iid":1,"title":"A"},{"iid":2,"title":"B"}]`)
		})

		_, err := client.ListIssues(ctx, "42", 1, 50)
		require.ErrorIs(t, err, tracker.ErrMalformedResponse)
	})
}

func TestTransportFailure_HTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	client, err := gitlab.NewClient("token", gitlab.WithBaseURL(url))
	require.NoError(t, err)

	_, err = client.ListIssues(context.Background(), "42", 1, 50)
	require.ErrorIs(t, err, tracker.ErrTransportFailure)
}

func TestCancelledContext_HTTP(t *testing.T) {
	client, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListIssues(ctx, "42", 1, 50)
	require.ErrorIs(t, err, context.Canceled)
}
