package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/awnumar/memguard"

	"github.com/PolarWolf314/panelctl/internal/audit"
	"github.com/PolarWolf314/panelctl/internal/configs"
	perrors "github.com/PolarWolf314/panelctl/internal/errors"
	"github.com/PolarWolf314/panelctl/internal/legacy"
)

// MigrateOptions configures the migrate workflow.
type MigrateOptions struct {
	// EnvPatterns select dotenv files. If empty, .env in Dir is used.
	EnvPatterns []string

	// Dir is the base directory for relative patterns. Defaults to ".".
	Dir string

	// Fields selects which variables to migrate. If empty, every variable
	// holding a legacy envelope is migrated under its lowercased name.
	Fields []FieldMapping

	// MasterKey overrides the key read from the dotenv files.
	MasterKey string

	// MasterKeyVar names the master key variable. Defaults to APP_KEY.
	MasterKeyVar string

	// DryRun decrypts every field but leaves the config untouched.
	DryRun bool

	// Logger receives decryption diagnostics. May be nil.
	Logger legacy.Logger

	// Settings locates the config and audit log. If nil, settings are
	// resolved from the environment.
	Settings *configs.Settings
}

// FieldResult is the outcome for one migrated field.
type FieldResult struct {
	// Variable is the dotenv variable name.
	Variable string

	// Credential is the config credential name.
	Credential string

	// Source is the dotenv file the value was read from. Empty when the
	// variable was not found.
	Source string

	// Missing is set when the variable is not defined in any file.
	Missing bool

	// Replaced is set when an existing credential got a different value.
	Replaced bool

	// Outcome is the decryption outcome.
	Outcome legacy.Outcome
}

// OK reports whether the field was recovered.
func (f FieldResult) OK() bool {
	return !f.Missing && f.Outcome.OK()
}

// MigrateResult contains the outcome of a migrate operation.
type MigrateResult struct {
	// RunID identifies this run in the config and audit log.
	RunID string

	// Sources lists the dotenv files that were read.
	Sources []string

	// KeySource is "flag" or the dotenv file the master key came from.
	KeySource string

	// Fields holds one result per selected field, in selection order.
	Fields []FieldResult

	// Migrated is the number of recovered fields.
	Migrated int

	// Failed is the number of fields that could not be recovered.
	Failed int

	// ConfigPath is the config file that was written, or would be.
	ConfigPath string

	// DryRun indicates whether this was a dry-run (no files modified).
	DryRun bool
}

// Migrate decrypts legacy dotenv fields and stores the plaintext as
// credentials in panelctl's config.
//
// A field that fails to decrypt is reported and skipped; the rest of the
// run carries on. The master key is held in locked memory for the duration
// of the run.
//
// Returns ErrMasterKeyMissing if no master key could be found.
// Returns ErrNoFieldsFound if no field was selected.
// Returns ErrInvalidTarget if a credential name is invalid.
func Migrate(ctx context.Context, opts MigrateOptions) (*MigrateResult, error) {
	log := loggerOrDiscard(opts.Logger)

	settings, err := settingsOrDefault(opts.Settings)
	if err != nil {
		return nil, err
	}

	sources, err := loadSources(opts.EnvPatterns, dirOrDefault(opts.Dir), log)
	if err != nil {
		return nil, err
	}

	keyVar := keyVarOrDefault(opts.MasterKeyVar)
	masterKey, keySource, err := resolveMasterKey(opts.MasterKey, keyVar, sources)
	if err != nil {
		return nil, err
	}

	keyBuf := memguard.NewBufferFromBytes([]byte(masterKey))
	defer keyBuf.Destroy()

	fields := opts.Fields
	if len(fields) == 0 {
		fields = encryptedFields(sources, keyVar)
	}
	if len(fields) == 0 {
		return nil, perrors.ErrNoFieldsFound
	}
	for _, f := range fields {
		if err := configs.ValidateCredentialName(f.Credential); err != nil {
			return nil, err
		}
	}

	configPath := settings.ConfigPath()
	cfg, err := configs.LoadPanelConfig(configPath)
	if err != nil {
		return nil, err
	}

	result := &MigrateResult{
		RunID:      configs.NewMigrationID(),
		KeySource:  keySource,
		ConfigPath: configPath,
		DryRun:     opts.DryRun,
	}
	for _, src := range sources {
		if src.Exists {
			result.Sources = append(result.Sources, src.Path)
		}
	}

	decryptor := legacy.NewDecryptor(log)
	var migrated, failed []string
	warnings := 0

	for _, f := range fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fr := FieldResult{Variable: f.Variable, Credential: f.Credential}

		value, source, ok := lookupField(sources, f.Variable)
		if !ok {
			log.Warnf("%s is not defined in any dotenv file", f.Variable)
			fr.Missing = true
			fr.Outcome.Err = fmt.Errorf("%w: %s", perrors.ErrFieldNotFound, f.Variable)
			result.Fields = append(result.Fields, fr)
			result.Failed++
			failed = append(failed, f.Variable)
			continue
		}
		fr.Source = source

		fr.Outcome = decryptor.Decrypt(value, keyBuf.String())
		warnings += warningCount(fr.Outcome)

		if !fr.Outcome.OK() {
			log.Warnf("Could not decrypt %s: %s", f.Variable, fr.Outcome.Reason)
			result.Fields = append(result.Fields, fr)
			result.Failed++
			failed = append(failed, f.Variable)
			continue
		}

		if existing, ok := cfg.Credentials[f.Credential]; ok && existing != fr.Outcome.Plaintext {
			fr.Replaced = true
		}
		if !opts.DryRun {
			if err := cfg.SetCredential(f.Credential, fr.Outcome.Plaintext); err != nil {
				return nil, err
			}
		}

		result.Fields = append(result.Fields, fr)
		result.Migrated++
		migrated = append(migrated, f.Credential)
	}

	if !opts.DryRun && result.Migrated > 0 {
		cfg.RecordMigration(result.RunID, strings.Join(result.Sources, ","), migrated, time.Now())
		if err := configs.SavePanelConfig(configPath, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", perrors.ErrInvalidConfig, err)
		}
	}

	entry := audit.NewEntry("migrate")
	entry.RunID = result.RunID
	entry.Source = strings.Join(result.Sources, ",")
	entry.Fields = migrated
	entry.Failed = failed
	entry.DryRun = opts.DryRun
	entry.Warnings = warnings
	audit.Log(settings.AuditPath(), entry)

	return result, nil
}

// encryptedFields selects every variable holding a legacy envelope, in file
// order, skipping the master key and duplicates. Names compare
// case-insensitively like dotenv keys.
func encryptedFields(sources []sourceFile, keyVar string) []FieldMapping {
	var fields []FieldMapping
	seen := make(map[string]bool)

	for _, src := range sources {
		for _, name := range src.Vars.Keys() {
			folded := strings.ToUpper(name)
			if strings.EqualFold(name, keyVar) || seen[folded] {
				continue
			}
			if !legacy.IsEnvelope(src.Vars.Value(name)) {
				continue
			}
			seen[folded] = true
			fields = append(fields, FieldMapping{Variable: name, Credential: configs.CredentialName(name)})
		}
	}

	return fields
}

// lookupField returns the value of name from the last source defining it.
func lookupField(sources []sourceFile, name string) (string, string, bool) {
	for i := len(sources) - 1; i >= 0; i-- {
		if v, ok := sources[i].Vars.Get(name); ok {
			return v, sources[i].Path, true
		}
	}
	return "", "", false
}
