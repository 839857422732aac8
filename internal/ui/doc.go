// Package ui provides semantic text formatting for CLI output.
//
// Formatters render differently depending on terminal capabilities. When
// colors are available, content is colorized. When NO_COLOR is set or the
// terminal doesn't support colors, text-based decorations (backticks,
// quotes) are used instead.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("panelctl legacy migrate") // Commands and code
//	ui.Path.Sprint("/srv/panel/.env")         // File paths
//	ui.Success.Sprint("✓")                    // Success indicators
//	ui.Error.Sprint("✗")                      // Error indicators
//	ui.Warning.Sprint("[dry-run]")            // Warnings
//	ui.Info.Sprint("→")                       // Informational hints
//	ui.Highlight.Sprint("DB_PASSWORD")        // User values
//	ui.Muted.Sprint("masked")                 // De-emphasized text
//
// Secret values are never printed in full unless the user asks for them;
// Mask renders a fixed-width placeholder that keeps a short prefix.
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
