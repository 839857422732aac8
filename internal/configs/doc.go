// Package configs manages panelctl's own configuration.
//
// Configuration is stored in TOML format at
// <user config dir>/panelctl/config.toml. PANELCTL_CONFIG_DIR overrides
// the directory, which is how tests and CI point panelctl at a scratch
// location.
//
// # Layout
//
//	[panel]
//	url = "https://panel.example.com"
//
//	[credentials]
//	db_password = "..."
//	mail_password = "..."
//
//	[migrations.<run-uuid>]
//	source = "/srv/panel/.env"
//	migrated_at = 2026-10-19T12:00:00Z
//	fields = ["db_password", "mail_password"]
//
// Credentials recovered by "panelctl legacy migrate" land in the
// credentials table. Every run is recorded under migrations with a
// random UUID so the audit log can point back to it.
//
// # Settings
//
// ResolveSettings works out where the config directory lives. Callers
// load and save the config through LoadPanelConfig and SavePanelConfig.
package configs
