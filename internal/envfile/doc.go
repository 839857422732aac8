// Package envfile reads dotenv-style files.
//
// The format is deliberately small: one KEY=VALUE pair per line, blank
// lines and lines starting with # are skipped, and a value may be wrapped
// in one pair of matching double or single quotes. There is no escaping,
// no multi-line values and no variable expansion. A # inside a value is
// part of the value.
//
// Keys compare case-insensitively and the last assignment of a key wins.
// A missing file loads as an empty Map so optional files need no special
// casing by callers.
package envfile
