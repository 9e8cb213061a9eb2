// Package constants provides centralized constants for the issue-manager project.
//
// Organization:
//   - provider.go: provider endpoints, quota headers and self-throttle values
//   - export.go: export/import file format and pagination
//   - storage.go: file permissions and buffer sizes
//   - validation.go: configuration limits and redaction
//   - output.go: console output formatting
//
// The throttle values mirror the behaviour users already rely on; change them
// together with the ratelimit tests.
package constants
