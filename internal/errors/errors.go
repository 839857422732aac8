package errors

import "errors"

// Legacy decryption errors map one-to-one onto the decryptor's failure reasons.
var (
	// ErrDecodeFailed indicates the encrypted value is neither base64-wrapped
	// JSON nor raw JSON, or the envelope lacks its iv or value field.
	ErrDecodeFailed = errors.New("could not decode encrypted envelope")

	// ErrKeyDeriveFailed indicates no cipher key could be derived from the master key.
	ErrKeyDeriveFailed = errors.New("could not derive cipher key")

	// ErrCipherFailed indicates block decryption or padding removal failed.
	ErrCipherFailed = errors.New("could not decrypt ciphertext")

	// ErrUnexpected indicates an uncategorized fault inside the decryptor.
	ErrUnexpected = errors.New("unexpected decryption failure")
)

// Migration errors indicate a migration run is missing required input.
var (
	// ErrMasterKeyMissing indicates no master key was supplied or found in the dotenv file.
	ErrMasterKeyMissing = errors.New("master key not found")

	// ErrNoFieldsFound indicates no encrypted fields were found to migrate.
	ErrNoFieldsFound = errors.New("no encrypted fields found")

	// ErrFieldNotFound indicates a requested field is absent from the dotenv file.
	ErrFieldNotFound = errors.New("field not found in dotenv file")
)

// Configuration errors indicate issues with panelctl's own configuration.
var (
	// ErrInvalidConfig indicates the configuration file is malformed or corrupt.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrInvalidTarget indicates a credential target name is not usable as a config key.
	ErrInvalidTarget = errors.New("invalid credential name")

	// ErrInvalidDateFormat indicates a --since or --until date is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// File errors indicate issues with dotenv file discovery or access.
var (
	// ErrNotConfigured indicates the dotenv file does not exist.
	// Loaders treat this as an empty file; it is exposed for callers that
	// want to report it.
	ErrNotConfigured = errors.New("dotenv file not found")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")
)
