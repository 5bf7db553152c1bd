package gpterm

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	Prompt  int // Input prompt and user message accent
	Error   int // Fatal and turn errors
	Warning int // Cancellation and log-write notices
	Success int // Banner highlights
	Muted   int // Status bar, placeholders, hints
	CodeBg  int // Code block background
	Accent  int // Headings, links
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Prompt:  4,
		Error:   1,
		Warning: 3,
		Success: 2,
		Muted:   8,
		CodeBg:  0,
		Accent:  5,
	}
}
