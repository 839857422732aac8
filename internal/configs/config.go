package configs

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	perrors "github.com/PolarWolf314/panelctl/internal/errors"
)

type PanelConfig struct {
	Panel       Panel                      `toml:"panel"`
	Credentials map[string]string          `toml:"credentials"`
	Migrations  map[string]MigrationRecord `toml:"migrations"`
}

type Panel struct {
	URL string `toml:"url"`
}

type MigrationRecord struct {
	Source     string    `toml:"source"`
	MigratedAt time.Time `toml:"migrated_at"`
	Fields     []string  `toml:"fields"`
}

var credentialNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

// LoadPanelConfig loads the configuration at path. A missing file yields
// an empty configuration.
func LoadPanelConfig(path string) (*PanelConfig, error) {
	config := &PanelConfig{
		Credentials: make(map[string]string),
		Migrations:  make(map[string]MigrationRecord),
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrInvalidConfig, err)
	}

	// Tables absent from the file decode as nil maps.
	if config.Credentials == nil {
		config.Credentials = make(map[string]string)
	}
	if config.Migrations == nil {
		config.Migrations = make(map[string]MigrationRecord)
	}

	return config, nil
}

// SavePanelConfig saves the configuration to path.
func SavePanelConfig(path string, config *PanelConfig) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// CredentialName turns a dotenv variable name into a credential name:
// DB_PASSWORD becomes db_password.
func CredentialName(envKey string) string {
	return strings.ToLower(strings.TrimSpace(envKey))
}

// ValidateCredentialName checks that name is usable as a credentials key.
func ValidateCredentialName(name string) error {
	if !credentialNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", perrors.ErrInvalidTarget, name)
	}
	return nil
}

// SetCredential stores value under name.
func (pc *PanelConfig) SetCredential(name, value string) error {
	if err := ValidateCredentialName(name); err != nil {
		return err
	}
	pc.Credentials[name] = value
	return nil
}

// CredentialNames returns the stored credential names in sorted order.
func (pc *PanelConfig) CredentialNames() []string {
	names := make([]string, 0, len(pc.Credentials))
	for name := range pc.Credentials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewMigrationID generates a new UUID for a migration run.
func NewMigrationID() string {
	return uuid.New().String()
}

// RecordMigration stores a migration run under id.
func (pc *PanelConfig) RecordMigration(id, source string, fields []string, at time.Time) {
	pc.Migrations[id] = MigrationRecord{
		Source:     source,
		MigratedAt: at.UTC(),
		Fields:     fields,
	}
}
