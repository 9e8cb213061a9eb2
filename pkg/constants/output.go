package constants

// Console Output.
const (
	// SeparatorWidth is the character width of console separators.
	SeparatorWidth = 60

	// MaxCellWidth truncates long descriptions in rendered tables.
	MaxCellWidth = 50

	// Prompt is printed before each interactive command.
	Prompt = "> "
)
