package legacy

import (
	"strconv"
	"strings"
)

// Unwrap extracts content from the PHP serializer's string form
// s:<N>:"<content>";. It reports false on any structural mismatch,
// including when content is not exactly N bytes long.
func Unwrap(s string) (string, bool) {
	if !strings.HasPrefix(s, "s:") {
		return "", false
	}

	colon := strings.IndexByte(s[2:], ':')
	if colon < 0 {
		return "", false
	}
	colon += 2

	digits := s[2:colon]
	if digits == "" {
		return "", false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", false
		}
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return "", false
	}

	open := strings.IndexByte(s[colon:], '"')
	if open < 0 {
		return "", false
	}
	start := colon + open + 1

	end := strings.IndexByte(s[start:], '"')
	if end < 0 {
		return "", false
	}

	content := s[start : start+end]
	if len(content) != n {
		return "", false
	}

	return content, true
}
