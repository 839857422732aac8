// Package errors provides typed error values for panelctl.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Legacy decryption errors: one per failure reason of the decryptor
//     (ErrDecodeFailed, ErrKeyDeriveFailed, ErrCipherFailed, ErrUnexpected)
//   - Migration errors: missing inputs for a migration run
//     (ErrMasterKeyMissing, ErrNoFieldsFound, ErrFieldNotFound)
//   - Configuration errors: panelctl's own config store and command input
//     (ErrInvalidConfig, ErrInvalidTarget, ErrInvalidDateFormat)
//   - File errors: dotenv discovery (ErrNotConfigured, ErrNoFilesFound)
//
// # Usage
//
// Wrap a sentinel with the lower-level cause:
//
//	return fmt.Errorf("%w: %v", errors.ErrCipherFailed, err)
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Migrate(ctx, opts)
//	if errors.Is(err, perrors.ErrMasterKeyMissing) {
//	    // Show user-friendly message
//	}
package errors
