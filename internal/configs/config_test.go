package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	perrors "github.com/PolarWolf314/panelctl/internal/errors"
)

func TestLoadPanelConfig_Missing(t *testing.T) {
	config, err := LoadPanelConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadPanelConfig failed: %v", err)
	}
	if config.Credentials == nil || config.Migrations == nil {
		t.Fatal("Expected initialized maps")
	}
}

func TestLoadPanelConfig_PanelOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[panel]\nurl = \"https://panel.example.com\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadPanelConfig(path)
	if err != nil {
		t.Fatalf("LoadPanelConfig failed: %v", err)
	}
	if config.Panel.URL != "https://panel.example.com" {
		t.Errorf("Panel.URL = %q", config.Panel.URL)
	}
	if err := config.SetCredential("db_password", "x"); err != nil {
		t.Errorf("SetCredential on loaded config failed: %v", err)
	}
}

func TestLoadPanelConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[panel\nurl ="), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadPanelConfig(path)
	if !errors.Is(err, perrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestPanelConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panelctl", "config.toml")

	config, err := LoadPanelConfig(path)
	if err != nil {
		t.Fatalf("LoadPanelConfig failed: %v", err)
	}

	config.Panel.URL = "https://panel.example.com"
	if err := config.SetCredential("mail_password", "s3cret"); err != nil {
		t.Fatalf("SetCredential failed: %v", err)
	}

	id := NewMigrationID()
	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	config.RecordMigration(id, "/srv/panel/.env", []string{"mail_password"}, at)

	if err := SavePanelConfig(path, config); err != nil {
		t.Fatalf("SavePanelConfig failed: %v", err)
	}

	loaded, err := LoadPanelConfig(path)
	if err != nil {
		t.Fatalf("LoadPanelConfig failed: %v", err)
	}

	if loaded.Credentials["mail_password"] != "s3cret" {
		t.Errorf("Expected credential to round trip, got %v", loaded.Credentials)
	}

	record, ok := loaded.Migrations[id]
	if !ok {
		t.Fatalf("Migration %s not found", id)
	}
	if record.Source != "/srv/panel/.env" || !record.MigratedAt.Equal(at) {
		t.Errorf("Unexpected migration record: %+v", record)
	}
	if len(record.Fields) != 1 || record.Fields[0] != "mail_password" {
		t.Errorf("Unexpected fields: %v", record.Fields)
	}
}

func TestCredentialName(t *testing.T) {
	if got := CredentialName(" DB_PASSWORD "); got != "db_password" {
		t.Errorf("CredentialName() = %q, want %q", got, "db_password")
	}
}

func TestValidateCredentialName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"db_password", true},
		{"rcon.survival-1", true},
		{"0token", true},
		{"", false},
		{"DB_PASSWORD", false},
		{"_leading", false},
		{"has space", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentialName(tt.name)
			if (err == nil) != tt.valid {
				t.Errorf("ValidateCredentialName(%q) = %v, want valid=%v", tt.name, err, tt.valid)
			}
			if err != nil && !errors.Is(err, perrors.ErrInvalidTarget) {
				t.Errorf("Expected ErrInvalidTarget, got %v", err)
			}
		})
	}
}

func TestCredentialNamesSorted(t *testing.T) {
	config := &PanelConfig{Credentials: map[string]string{"b": "2", "a": "1", "c": "3"}}
	got := config.CredentialNames()
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("CredentialNames() = %v", got)
	}
}

func TestNewMigrationID(t *testing.T) {
	if _, err := uuid.Parse(NewMigrationID()); err != nil {
		t.Errorf("NewMigrationID() is not a UUID: %v", err)
	}
}

func TestResolveSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(ConfigDirEnv, dir)

	settings, err := ResolveSettings()
	if err != nil {
		t.Fatalf("ResolveSettings failed: %v", err)
	}
	if settings.ConfigPath() != filepath.Join(dir, "config.toml") {
		t.Errorf("ConfigPath() = %q", settings.ConfigPath())
	}
	if settings.AuditPath() != filepath.Join(dir, "audit.jsonl") {
		t.Errorf("AuditPath() = %q", settings.AuditPath())
	}
}
