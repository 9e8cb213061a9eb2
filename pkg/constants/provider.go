package constants

import "time"

// Provider API Endpoints.
const (
	// GitHubAPIEndpoint is the default GitHub REST API base URL.
	GitHubAPIEndpoint = "https://api.github.com/"

	// GitLabAPIEndpoint is the default GitLab REST API base URL for gitlab.com.
	// For self-managed instances, override via GITLAB_API_URL.
	GitLabAPIEndpoint = "https://gitlab.com/api/v4/"

	// GitHubAcceptHeader is the media type requested from GitHub.
	GitHubAcceptHeader = "application/vnd.github.v3+json"

	// DefaultUserAgent is sent when no application name is configured.
	DefaultUserAgent = "issue-manager"
)

// Quota Headers
//
// Both providers report the number of requests left in the current window.
// Headers are matched case-insensitively.
const (
	// GitHubRemainingHeader is the GitHub remaining-quota header.
	GitHubRemainingHeader = "X-RateLimit-Remaining"

	// GitLabRemainingHeader is the GitLab remaining-quota header.
	GitLabRemainingHeader = "RateLimit-Remaining"
)

// Self-Throttle
//
// Each adapter keeps its own view of the remaining quota. Below the threshold
// every request is delayed by the cooldown.
const (
	// InitialRemainingQuota is the assumed quota before any response was seen.
	InitialRemainingQuota = 10

	// LowQuotaThreshold is the remaining quota under which requests are delayed.
	LowQuotaThreshold = 5

	// ThrottleCooldown is the delay applied before a request when quota is low.
	ThrottleCooldown = 500 * time.Millisecond

	// LowQuotaLogInterval limits how often the low-quota warning is logged.
	LowQuotaLogInterval = 10 * time.Second
)
