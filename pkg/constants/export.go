package constants

// Export / Import File Format
//
// One issue per line, fields separated by ';' with no escaping.
const (
	// FieldDelimiter separates the fields of a line.
	FieldDelimiter = ";"

	// ExportHeader is the first line of every export file.
	ExportHeader = "Id;Name;Description"

	// ExportFieldCount is the number of fields on every line.
	ExportFieldCount = 3

	// LineTerminator ends every written line.
	LineTerminator = "\n"
)

// Pagination.
const (
	// DefaultPageSize is the page size used when listing all issues.
	DefaultPageSize = 50

	// MaxPageSize is the largest page size both providers accept.
	MaxPageSize = 100

	// FirstPage is the index of the first page (both providers are 1-based).
	FirstPage = 1
)
