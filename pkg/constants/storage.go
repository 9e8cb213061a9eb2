package constants

// Size Constants.
const (
	// KB is one kilobyte (1,024 bytes).
	KB = 1024

	// MB is one megabyte (1,024 kilobytes).
	MB = 1024 * KB
)

// Buffer Sizes.
const (
	// MaxLineSize is the longest import line accepted by the line scanner.
	// Descriptions can be long; 1MB keeps bufio.Scanner from failing on them.
	MaxLineSize = 1 * MB

	// InitialLineBuffer is the initial scanner buffer size.
	InitialLineBuffer = 64 * KB
)

// File Permissions.
const (
	// DefaultFilePermission is the permission mode for export files (rw-r--r--).
	DefaultFilePermission = 0644

	// DefaultDirPermission is the permission mode for created directories (rwxr-xr-x).
	DefaultDirPermission = 0755
)
