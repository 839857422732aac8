package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the configuration directory.
const ConfigDirEnv = "PANELCTL_CONFIG_DIR"

type Settings struct {
	ConfigDir string
}

// ResolveSettings returns the settings for the current user.
func ResolveSettings() (*Settings, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return &Settings{ConfigDir: dir}, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting config directory: %w", err)
	}

	return &Settings{ConfigDir: filepath.Join(configDir, "panelctl")}, nil
}

// ConfigPath returns the path of config.toml.
func (s *Settings) ConfigPath() string {
	return filepath.Join(s.ConfigDir, "config.toml")
}

// AuditPath returns the path of the audit log.
func (s *Settings) AuditPath() string {
	return filepath.Join(s.ConfigDir, "audit.jsonl")
}
