package constants

// Configuration Limits.
const (
	// MinPageSize is the smallest accepted page size.
	MinPageSize = 1
)

// AWS S3 Validation Constants
//
// Reference: https://docs.aws.amazon.com/AmazonS3/latest/userguide/bucketnamingrules.html
const (
	// S3BucketNameMinLength is the minimum allowed S3 bucket name length.
	S3BucketNameMinLength = 3

	// S3BucketNameMaxLength is the maximum allowed S3 bucket name length.
	S3BucketNameMaxLength = 63
)

// Configuration Redaction.
const (
	// RedactedValue is the placeholder for redacted credentials in output.
	RedactedValue = "***REDACTED***"
)
