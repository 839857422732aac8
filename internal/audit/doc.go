// Package audit provides audit trail logging for panelctl migrations.
//
// Every migration run and every single-value decryption done through the
// CLI is recorded in an audit log next to panelctl's config. Entries never
// contain plaintext, only field names and outcomes.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<config dir>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Operator (local username)
//   - Operation name
//   - Operation-specific details (source file, fields, run UUID, failures)
//
// # Usage
//
//	entry := audit.NewEntry("migrate")
//	entry.RunID = runID
//	entry.Fields = migrated
//	audit.Log(settings.AuditPath(), entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error. Operations should never
// fail just because audit logging failed.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
