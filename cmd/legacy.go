package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	logger "github.com/PolarWolf314/panelctl/internal/logging"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// LegacyCmd groups the commands that read the legacy panel's dotenv file.
	LegacyCmd = &cobra.Command{
		Use:   "legacy",
		Short: "Recover credentials from the legacy panel installation",
		Long: `Reads the legacy panel's dotenv file and decrypts the values its PHP
encrypter produced, so they can be moved into panelctl's config.

Use these commands to:
  - List the variables of a dotenv file (legacy env)
  - Decrypt a single value (legacy decrypt)
  - Migrate encrypted fields into panelctl's config (legacy migrate)

Examples:
  # See which variables are encrypted
  panelctl legacy env /srv/panel/.env

  # Decrypt one value with the panel's APP_KEY
  panelctl legacy decrypt eyJpdiI6... --env /srv/panel/.env

  # Migrate every encrypted field
  panelctl legacy migrate /srv/panel/.env`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing legacy command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	LegacyCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	LegacyCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// GetLegacyCmd returns the LegacyCmd for testing.
func GetLegacyCmd() *cobra.Command {
	return LegacyCmd
}

// ResetGlobalState resets all legacy command global variables to their
// default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEnvCommandState()
	resetDecryptCommandState()
	resetMigrateCommandState()
	resetCobraFlagState(LegacyCmd)
}

// resetCobraFlagState clears the Changed mark on every flag below cmd to
// prevent test pollution.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCobraFlagState(sub)
	}
}
