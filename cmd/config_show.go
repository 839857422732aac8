package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/panelctl/internal/configs"
	"github.com/PolarWolf314/panelctl/internal/ui"
)

var (
	configShowJSON   bool
	configShowValues bool
)

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
	configShowCmd.Flags().BoolVar(&configShowValues, "show-values", false, "print credential values instead of masking them")
	ConfigCmd.AddCommand(configShowCmd)
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
	configShowValues = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays panelctl's configuration: the panel URL, the names of stored
credentials and past migration runs. Credential values are masked unless
--show-values is given. JSON output never includes values.

Examples:
  panelctl config show
  panelctl config show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")
		ConfigLogger.Debugf("Flags: json=%t, show-values=%t", configShowJSON, configShowValues)

		settings, err := configs.ResolveSettings()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to resolve settings: %v", err)
		}

		ConfigLogger.Debugf("Loading config from %s", settings.ConfigPath())
		config, err := configs.LoadPanelConfig(settings.ConfigPath())
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if configShowJSON {
			return outputConfigJSON(settings, config)
		}
		outputConfigText(settings, config)
		return nil
	},
}

// configSummary is the JSON shape of config show. Values are left out.
type configSummary struct {
	Path        string   `json:"path"`
	PanelURL    string   `json:"panel_url,omitempty"`
	Credentials []string `json:"credentials"`
	Migrations  []string `json:"migrations"`
}

func outputConfigJSON(settings *configs.Settings, config *configs.PanelConfig) error {
	summary := configSummary{
		Path:        settings.ConfigPath(),
		PanelURL:    config.Panel.URL,
		Credentials: config.CredentialNames(),
		Migrations:  sortedMigrationIDs(config),
	}

	output, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
	}
	fmt.Println(string(output))
	return nil
}

func outputConfigText(settings *configs.Settings, config *configs.PanelConfig) {
	fmt.Println(ui.Info.Sprint("panelctl Configuration") + " (" + ui.Path.Sprint(settings.ConfigPath()) + "):")
	fmt.Println()

	panelURL := ui.Muted.Sprint("not set")
	if config.Panel.URL != "" {
		panelURL = ui.Highlight.Sprint(config.Panel.URL)
	}
	fmt.Printf("  %-12s %s\n", "Panel URL:", panelURL)

	names := config.CredentialNames()
	if len(names) == 0 {
		fmt.Println()
		fmt.Println(ui.Warning.Sprint("⚠") + " No credentials stored.")
		fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("panelctl legacy migrate") + " to import them from the legacy panel")
		return
	}

	fmt.Println()
	fmt.Println(ui.Info.Sprint("Credentials:"))
	for _, name := range names {
		value := ui.Mask(config.Credentials[name])
		if configShowValues {
			value = config.Credentials[name]
		}
		fmt.Printf("  %s = %s\n", ui.Highlight.Sprint(name), value)
	}

	ids := sortedMigrationIDs(config)
	if len(ids) > 0 {
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Migrations:"))
		for _, id := range ids {
			record := config.Migrations[id]
			shortID := id
			if len(id) > 8 {
				shortID = id[:8] + "..."
			}
			fmt.Printf("  %s %s, %d fields from %s\n",
				ui.Highlight.Sprint(shortID),
				record.MigratedAt.Format("2006-01-02 15:04:05"),
				len(record.Fields),
				ui.Path.Sprint(record.Source))
		}
	}
}

// sortedMigrationIDs returns migration run IDs oldest first.
func sortedMigrationIDs(config *configs.PanelConfig) []string {
	ids := make([]string, 0, len(config.Migrations))
	for id := range config.Migrations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := config.Migrations[ids[i]], config.Migrations[ids[j]]
		if a.MigratedAt.Equal(b.MigratedAt) {
			return ids[i] < ids[j]
		}
		return a.MigratedAt.Before(b.MigratedAt)
	})
	return ids
}
