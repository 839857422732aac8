// Package utils provides shared helpers for panelctl commands.
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data, refusing to block on an interactive terminal
//
// # Terminal Utilities
//
//   - ReadSecret: prompts for a secret without echoing input
//   - IsTerminal: checks whether stdin is a terminal
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
package utils
