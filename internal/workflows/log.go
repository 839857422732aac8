package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/panelctl/internal/audit"
	"github.com/PolarWolf314/panelctl/internal/configs"
	perrors "github.com/PolarWolf314/panelctl/internal/errors"
)

const auditTimeLayout = "2006-01-02T15:04:05.000000Z"

// LogOptions selects and orders audit log entries.
type LogOptions struct {
	// Limit keeps only the newest N matching entries. 0 keeps all.
	Limit int

	// Reverse lists newest entries first.
	Reverse bool

	// Operations is a comma-separated list such as "migrate,decrypt".
	Operations string

	// Since and Until bound entries by day (YYYY-MM-DD), both inclusive.
	Since string
	Until string

	// Settings locates the audit log. If nil, settings are resolved from
	// the environment.
	Settings *configs.Settings
}

// LogResult holds the selected entries.
type LogResult struct {
	Entries []audit.Entry

	// TotalEntriesBeforeFilter counts every entry in the log.
	TotalEntriesBeforeFilter int
}

// entryFilter reports whether an entry should be kept.
type entryFilter func(audit.Entry) bool

// Log reads panelctl's audit log and applies the filters in opts.
//
// Returns ErrNoFilesFound if no audit log exists.
// Returns ErrInvalidDateFormat if Since or Until is not YYYY-MM-DD.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	settings, err := settingsOrDefault(opts.Settings)
	if err != nil {
		return nil, err
	}

	logPath := settings.AuditPath()
	if !fileExists(logPath) {
		return nil, perrors.ErrNoFilesFound
	}

	filters, err := buildFilters(opts)
	if err != nil {
		return nil, err
	}

	entries, err := audit.ReadEntries(logPath)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	selected := make([]audit.Entry, 0, len(entries))
	for _, e := range entries {
		if matchesAll(e, filters) {
			selected = append(selected, e)
		}
	}

	if opts.Limit > 0 && len(selected) > opts.Limit {
		selected = selected[len(selected)-opts.Limit:]
	}
	if opts.Reverse {
		slices.Reverse(selected)
	}

	return &LogResult{Entries: selected, TotalEntriesBeforeFilter: len(entries)}, nil
}

func buildFilters(opts LogOptions) ([]entryFilter, error) {
	var filters []entryFilter

	if opts.Operations != "" {
		wanted := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			wanted[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filters = append(filters, func(e audit.Entry) bool {
			return wanted[strings.ToLower(e.Operation)]
		})
	}

	if opts.Since != "" {
		from, err := parseDay("--since", opts.Since)
		if err != nil {
			return nil, err
		}
		filters = append(filters, timeFilter(func(t time.Time) bool { return !t.Before(from) }))
	}

	if opts.Until != "" {
		day, err := parseDay("--until", opts.Until)
		if err != nil {
			return nil, err
		}
		to := day.AddDate(0, 0, 1)
		filters = append(filters, timeFilter(func(t time.Time) bool { return t.Before(to) }))
	}

	return filters, nil
}

func parseDay(flag, value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s wants YYYY-MM-DD, got %q", perrors.ErrInvalidDateFormat, flag, value)
	}
	return day, nil
}

// timeFilter drops entries whose timestamp cannot be parsed.
func timeFilter(keep func(time.Time) bool) entryFilter {
	return func(e audit.Entry) bool {
		t, ok := parseTimestamp(e.Timestamp)
		return ok && keep(t)
	}
}

func matchesAll(e audit.Entry, filters []entryFilter) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(auditTimeLayout, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails summarizes an entry for display.
func FormatDetails(e audit.Entry) string {
	var parts []string

	switch e.Operation {
	case "migrate":
		parts = append(parts, fmt.Sprintf("%d migrated", len(e.Fields)))
		if len(e.Failed) > 0 {
			parts = append(parts, fmt.Sprintf("%d failed", len(e.Failed)))
		}
		if e.DryRun {
			parts = append(parts, "dry run")
		}
	case "decrypt":
		if e.Reason != "" {
			parts = append(parts, "failed: "+e.Reason)
		} else {
			parts = append(parts, "ok")
		}
	}

	if e.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", e.Warnings))
	}

	return strings.Join(parts, ", ")
}
