// Package gitlab implements the issue repository on top of the GitLab REST API (v4).
package gitlab

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/ratelimit"
	gitlab "gitlab.com/gitlab-org/api/client-go"
	"golang.org/x/time/rate"
)

var log Logger

// Logger interface defines the logging methods used by the GitLab client.
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

// Client implements tracker.Repository for GitLab.
type Client struct {
	issues   IssuesService
	throttle *ratelimit.Transport
}

type clientOptions struct {
	baseURL   string
	userAgent string
	base      http.RoundTripper
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL overrides the API base URL. Default: https://gitlab.com/api/v4/
// client-go appends /api/v4/ when missing.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) {
		o.userAgent = ua
	}
}

// WithTransport sets the round tripper under the throttle.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.base = rt
	}
}

// NewClient returns a GitLab client authenticating with the OAuth token
// apiKey. The client owns its own throttle; client-go retries and rate
// limiting are disabled so the throttle is the only one in the path.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	o := clientOptions{baseURL: constants.GitLabAPIEndpoint}
	for _, opt := range opts {
		opt(&o)
	}

	throttle := ratelimit.NewTransport(constants.GitLabRemainingHeader, ratelimit.WithBase(o.base))
	glc, err := gitlab.NewOAuthClient(apiKey,
		gitlab.WithBaseURL(o.baseURL),
		gitlab.WithHTTPClient(&http.Client{Transport: throttle}),
		gitlab.WithCustomLimiter(rate.NewLimiter(rate.Inf, 0)),
		gitlab.WithCustomRetryMax(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}
	if o.userAgent != "" {
		glc.UserAgent = o.userAgent
	}

	return &Client{
		issues:   newIssuesService(glc),
		throttle: throttle,
	}, nil
}

// NewClientWithIssuesService returns a Client over an arbitrary issues
// service. It has no throttle of its own.
func NewClientWithIssuesService(issues IssuesService) *Client {
	return &Client{issues: issues}
}

// Throttle returns the rate limiter owned by the client, nil when the client
// was built over a custom issues service.
func (c *Client) Throttle() *ratelimit.Transport {
	return c.throttle
}
