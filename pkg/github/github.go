// Package github implements the issue repository on top of the GitHub REST API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/ratelimit"
	"github.com/sgaunet/issue-manager/pkg/tracker"
)

var log Logger

// Logger interface defines the logging methods used by the GitHub client.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

func init() {
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// SetLogger sets the logger.
func SetLogger(l Logger) {
	if l != nil {
		log = l
	}
}

// repoPattern accepts "owner/name".
var repoPattern = regexp.MustCompile(`^[^/\s]+/[^/\s]+$`)

// HTTPClient is the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements tracker.Repository for GitHub.
type Client struct {
	baseURL    string
	apiKey     string
	appName    string
	httpClient HTTPClient
	throttle   *ratelimit.Transport
}

var _ tracker.Repository = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Default: https://api.github.com/
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the throttled default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient returns a GitHub client authenticating with apiKey and
// identifying itself as appName. The client owns its own throttle.
func NewClient(apiKey, appName string, opts ...Option) *Client {
	throttle := ratelimit.NewTransport(constants.GitHubRemainingHeader)
	c := &Client{
		baseURL:    constants.GitHubAPIEndpoint,
		apiKey:     apiKey,
		appName:    appName,
		httpClient: &http.Client{Transport: throttle},
		throttle:   throttle,
	}
	if c.appName == "" {
		c.appName = constants.DefaultUserAgent
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Throttle returns the rate limiter owned by the client.
func (c *Client) Throttle() *ratelimit.Transport {
	return c.throttle
}

type issueRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type stateRequest struct {
	State string `json:"state"`
}

// AddIssue creates an issue.
func (c *Client) AddIssue(ctx context.Context, repo string, req tracker.CreateIssueRequest) (tracker.Issue, error) {
	if err := validateRepo(repo); err != nil {
		return tracker.Issue{}, err
	}
	return c.sendIssue(ctx, http.MethodPost, "repos/"+repo+"/issues",
		issueRequest{Title: req.Title, Body: req.Description})
}

// UpdateIssue replaces the title and description of an issue.
func (c *Client) UpdateIssue(ctx context.Context, repo string, req tracker.UpdateIssueRequest) (tracker.Issue, error) {
	if err := validateRepo(repo); err != nil {
		return tracker.Issue{}, err
	}
	return c.sendIssue(ctx, http.MethodPatch, issuePath(repo, req.ID),
		issueRequest{Title: req.Title, Body: req.Description})
}

// CloseIssue sets the state of an issue to closed.
func (c *Client) CloseIssue(ctx context.Context, repo string, id int64) (tracker.Issue, error) {
	if err := validateRepo(repo); err != nil {
		return tracker.Issue{}, err
	}
	return c.sendIssue(ctx, http.MethodPatch, issuePath(repo, id), stateRequest{State: "closed"})
}

// ListIssues returns one page of issues.
func (c *Client) ListIssues(ctx context.Context, repo string, page, pageSize int) ([]tracker.Issue, error) {
	if err := validateRepo(repo); err != nil {
		return nil, err
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(pageSize))

	body, err := c.do(ctx, http.MethodGet, "repos/"+repo+"/issues?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var ghIssues []githubIssue
	if err := json.Unmarshal(body, &ghIssues); err != nil {
		return nil, tracker.MalformedError(err)
	}
	log.Debug("ListIssues", "repo", repo, "page", page, "count", len(ghIssues))
	return convertIssues(ghIssues), nil
}

func (c *Client) sendIssue(ctx context.Context, method, path string, payload any) (tracker.Issue, error) {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return tracker.Issue{}, err
	}
	var ghIssue *githubIssue
	if err := json.Unmarshal(body, &ghIssue); err != nil {
		return tracker.Issue{}, tracker.MalformedError(err)
	}
	if ghIssue == nil {
		return tracker.Issue{}, tracker.NewError(tracker.KindMalformedResponse, "unable to parse the response", "empty issue")
	}
	return ghIssue.convert(), nil
}

// do sends the request and returns the body of a 2xx response. Every other
// outcome is returned as a *tracker.Error, except context errors.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, tracker.NewError(tracker.KindUnexpected, "failed to encode request", err.Error())
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := strings.TrimSuffix(c.baseURL, "/") + "/" + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, tracker.NewError(tracker.KindUnexpected, "failed to create request", err.Error())
	}
	req.Header.Set("Accept", constants.GitHubAcceptHeader)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.appName)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("github request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("github request: %w", ctxErr)
		}
		return nil, tracker.TransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("github response: %w", err)
		}
		return nil, tracker.TransportError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn("github request failed", "method", method, "path", path, "status", resp.StatusCode)
		return nil, tracker.ClassifyErrorBody(body)
	}
	return body, nil
}

func issuePath(repo string, id int64) string {
	return "repos/" + repo + "/issues/" + strconv.FormatInt(id, 10)
}

func validateRepo(repo string) error {
	if !repoPattern.MatchString(repo) {
		return tracker.NewError(tracker.KindInvalidRepository,
			fmt.Sprintf("invalid repository %q, expected owner/name", repo), "")
	}
	return nil
}
