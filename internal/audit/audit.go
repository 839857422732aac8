package audit

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"time"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	Operator  string `json:"user"` // Local username.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	RunID    string   `json:"run_id,omitempty"`   // For migrate.
	Source   string   `json:"source,omitempty"`   // Dotenv file read.
	Fields   []string `json:"fields,omitempty"`   // Credentials written.
	Failed   []string `json:"failed,omitempty"`   // Fields that could not be decrypted.
	Reason   string   `json:"reason,omitempty"`   // For decrypt failures.
	DryRun   bool     `json:"dry_run,omitempty"`  // For migrate --dry-run.
	Warnings int      `json:"warnings,omitempty"` // Key normalization and MAC notices.
}

// Log appends an entry to the audit log at logPath.
// If logging fails it is silently skipped.
// Operations should not fail just because audit logging failed.
func Log(logPath string, entry Entry) {
	if logPath == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// NewEntry is a convenience function that populates the operator field.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op}

	if u, err := user.Current(); err == nil {
		entry.Operator = u.Username
	}

	return entry
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(logPath string) ([]Entry, error) {
	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
