// Package workflows provides high-level orchestration for panelctl commands.
//
// Workflows coordinate the envfile, legacy, configs and audit packages to
// implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Resolving dotenv files and the master key
//   - Decrypting legacy values
//   - Writing recovered credentials to panelctl's config
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Decrypt: decrypts a single legacy value
//   - Inspect: lists the variables of dotenv files and flags encrypted ones
//   - Migrate: decrypts dotenv fields and stores them as credentials
//   - Log: reads and filters the audit log
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package for
// conditions that stop the whole command (no master key, nothing to
// migrate, broken config). A value that cannot be decrypted is not an
// error: it is reported per field through legacy.Outcome so a migration
// carries on past it.
//
//	result, err := workflows.Migrate(ctx, opts)
//	if errors.Is(err, perrors.ErrMasterKeyMissing) {
//	    // Ask for --key
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Migrate checks it between fields so a long run can be interrupted.
package workflows
