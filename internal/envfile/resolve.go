package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	perrors "github.com/PolarWolf314/panelctl/internal/errors"
)

// DefaultName is the dotenv file used when no pattern is given.
const DefaultName = ".env"

// Resolve takes user-provided paths, directories or globs and returns the
// matching dotenv files. With no patterns it returns dir/.env, whether or
// not that file exists, so callers can report it as not configured.
func Resolve(patterns []string, dir string) ([]string, error) {
	if len(patterns) == 0 {
		return []string{filepath.Join(dir, DefaultName)}, nil
	}

	var files []string
	seen := make(map[string]bool) // Deduplicate.

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, dir)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, perrors.ErrNoFilesFound
	}

	return files, nil
}

func resolvePattern(pattern, dir string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(dir, pattern)
	}

	info, err := os.Stat(absPattern)
	if err == nil && info.IsDir() {
		return findInDir(absPattern)
	}

	if strings.ContainsAny(pattern, "*?[{") {
		return expandGlob(absPattern, pattern)
	}

	// Literal paths are returned even when missing; Load treats them as empty.
	return []string{absPattern}, nil
}

func expandGlob(absPattern, pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if IsDotenv(m) {
			filtered = append(filtered, m)
		}
	}

	return filtered, nil
}

// findInDir returns dotenv files directly inside dir.
func findInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if IsDotenv(path) {
			files = append(files, path)
		}
	}

	return files, nil
}

// IsDotenv reports whether path names a dotenv file (.env, .env.local,
// production.env and so on). Backups and examples are excluded.
func IsDotenv(path string) bool {
	base := filepath.Base(path)
	if !strings.Contains(base, ".env") {
		return false
	}
	for _, suffix := range []string{".example", ".sample", ".bak", ".dist"} {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}
	return true
}
