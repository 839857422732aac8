package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/panelctl/internal/audit"
	"github.com/PolarWolf314/panelctl/internal/configs"
	"github.com/PolarWolf314/panelctl/internal/legacy"
)

// DecryptOptions configures the decrypt workflow.
type DecryptOptions struct {
	// Value is the encrypted legacy value, base64 text or raw JSON.
	Value string

	// MasterKey overrides the key read from the dotenv file.
	MasterKey string

	// EnvPatterns select the dotenv files searched for the master key.
	// If empty, .env in Dir is used.
	EnvPatterns []string

	// Dir is the base directory for relative patterns. Defaults to ".".
	Dir string

	// MasterKeyVar names the dotenv variable holding the master key.
	// Defaults to APP_KEY.
	MasterKeyVar string

	// Logger receives decryption diagnostics. May be nil.
	Logger legacy.Logger

	// Settings locates the audit log. If nil, settings are resolved from
	// the environment.
	Settings *configs.Settings
}

// DecryptResult contains the outcome of a decrypt operation.
type DecryptResult struct {
	// Outcome is the full decryption outcome, including the failure reason.
	Outcome legacy.Outcome

	// KeySource is "flag" or the dotenv file the master key came from.
	KeySource string
}

// Decrypt decrypts a single legacy value.
//
// A value that fails to decrypt is not an error; the failure is reported
// through Outcome.Reason. Returns ErrMasterKeyMissing if no master key was
// given and none could be found in the dotenv files.
func Decrypt(ctx context.Context, opts DecryptOptions) (*DecryptResult, error) {
	log := loggerOrDiscard(opts.Logger)

	masterKey, keySource := opts.MasterKey, "flag"
	if masterKey == "" {
		sources, err := loadSources(opts.EnvPatterns, dirOrDefault(opts.Dir), log)
		if err != nil {
			return nil, err
		}

		masterKey, keySource, err = resolveMasterKey("", keyVarOrDefault(opts.MasterKeyVar), sources)
		if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := legacy.NewDecryptor(log).Decrypt(opts.Value, masterKey)

	settings, err := settingsOrDefault(opts.Settings)
	if err != nil {
		return nil, err
	}

	entry := audit.NewEntry("decrypt")
	if keySource != "flag" {
		entry.Source = keySource
	}
	if !outcome.OK() {
		entry.Reason = outcome.Reason.String()
	}
	entry.Warnings = warningCount(outcome)
	audit.Log(settings.AuditPath(), entry)

	return &DecryptResult{Outcome: outcome, KeySource: keySource}, nil
}

func warningCount(o legacy.Outcome) int {
	n := 0
	if o.KeyNormalized {
		n++
	}
	if o.MACMismatch {
		n++
	}
	return n
}

func loggerOrDiscard(log legacy.Logger) legacy.Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

func dirOrDefault(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func keyVarOrDefault(name string) string {
	if name == "" {
		return DefaultMasterKeyVar
	}
	return name
}

func settingsOrDefault(s *configs.Settings) (*configs.Settings, error) {
	if s != nil {
		return s, nil
	}
	resolved, err := configs.ResolveSettings()
	if err != nil {
		return nil, fmt.Errorf("resolving settings: %w", err)
	}
	return resolved, nil
}
