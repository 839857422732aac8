package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/PolarWolf314/panelctl/internal/errors"
	"github.com/PolarWolf314/panelctl/internal/legacy"
	"github.com/PolarWolf314/panelctl/internal/ui"
	"github.com/PolarWolf314/panelctl/internal/utils"
	"github.com/PolarWolf314/panelctl/internal/workflows"
)

var (
	migrateFields     []string
	migrateKey        string
	migrateKeyVar     string
	migrateDryRun     bool
	migrateShowValues bool
)

func init() {
	migrateCmd.Flags().StringArrayVarP(&migrateFields, "field", "f", nil, "variable to migrate as NAME or NAME=credential (repeatable)")
	migrateCmd.Flags().StringVar(&migrateKey, "key", "", "master key, overrides the dotenv file")
	migrateCmd.Flags().StringVar(&migrateKeyVar, "key-var", workflows.DefaultMasterKeyVar, "dotenv variable holding the master key")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "decrypt and report without writing panelctl's config")
	migrateCmd.Flags().BoolVar(&migrateShowValues, "show-values", false, "print recovered values instead of masking them")
	LegacyCmd.AddCommand(migrateCmd)
}

// resetMigrateCommandState resets the migrate command's global state for testing.
func resetMigrateCommandState() {
	migrateFields = nil
	migrateKey = ""
	migrateKeyVar = workflows.DefaultMasterKeyVar
	migrateDryRun = false
	migrateShowValues = false
}

var migrateCmd = &cobra.Command{
	Use:   "migrate [file...]",
	Short: "Move encrypted legacy credentials into panelctl's config",
	Long: `Decrypts fields of the legacy dotenv file and stores the plaintext as
credentials in panelctl's config.

Without --field every variable holding an encrypted value is migrated,
named after the lowercased variable. A field that cannot be decrypted is
reported and skipped.

Examples:
  # Migrate every encrypted field of ./.env
  panelctl legacy migrate

  # Pick fields and name the credentials
  panelctl legacy migrate /srv/panel/.env -f DB_PASSWORD=database.password -f MAIL_PASSWORD

  # Preview without writing anything
  panelctl legacy migrate --dry-run`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting migrate command")
	Logger.Debugf("Patterns: %v, fields: %v, dry-run=%t", args, migrateFields, migrateDryRun)

	spinner, cleanup := startSpinner(Logger, "Migrating legacy credentials...")
	defer cleanup()

	fields := make([]workflows.FieldMapping, 0, len(migrateFields))
	for _, spec := range migrateFields {
		mapping, err := workflows.ParseFieldMapping(spec)
		if err != nil {
			spinner.FinalMSG, _ = formatCommonError(err, migrateKeyVar)
			return nil
		}
		fields = append(fields, mapping)
	}

	opts := workflows.MigrateOptions{
		EnvPatterns:  args,
		Dir:          ".",
		Fields:       fields,
		MasterKey:    migrateKey,
		MasterKeyVar: migrateKeyVar,
		DryRun:       migrateDryRun,
		Logger:       Logger,
	}

	result, err := workflows.Migrate(context.Background(), opts)
	if errors.Is(err, perrors.ErrMasterKeyMissing) {
		Logger.Debugf("No master key found, prompting")
		if key, perr := promptMasterKey(spinner, migrateKeyVar); perr == nil {
			opts.MasterKey = key
			result, err = workflows.Migrate(context.Background(), opts)
		}
	}
	if err != nil {
		spinner.FinalMSG = formatMigrateError(err)
		if isMigrateUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Infof("Migration run %s: %d recovered, %d failed", result.RunID, result.Migrated, result.Failed)

	outcomes := make([]legacy.Outcome, 0, len(result.Fields))
	for _, f := range result.Fields {
		outcomes = append(outcomes, f.Outcome)
	}
	reportNotices(Logger, outcomes...)
	spinner.FinalMSG = formatMigrateResult(result)
	return nil
}

func formatMigrateResult(result *workflows.MigrateResult) string {
	var b strings.Builder

	if len(result.Sources) > 0 {
		b.WriteString("Read from:" + utils.FormatPaths(result.Sources))
	}

	for _, f := range result.Fields {
		name := ui.Highlight.Sprint(f.Variable)
		switch {
		case f.Missing:
			b.WriteString(ui.Error.Sprint("✗") + " " + name + " not found in any dotenv file\n")

		case !f.OK():
			b.WriteString(ui.Error.Sprint("✗") + " " + name + " could not decrypt " + ui.Muted.Sprint(f.Outcome.Reason.String()) + "\n")

		default:
			value := ui.Mask(f.Outcome.Plaintext)
			if migrateShowValues {
				value = f.Outcome.Plaintext
			}
			line := ui.Success.Sprint("✓") + " " + name + " → " + ui.Highlight.Sprint(f.Credential) + " " + value
			if f.Replaced {
				line += " " + ui.Muted.Sprint("replaced")
			}
			if f.Outcome.MACMismatch {
				line += " " + ui.Warning.Sprint("⚠ MAC mismatch")
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")
	summary := fmt.Sprintf("%d recovered, %d failed", result.Migrated, result.Failed)
	switch {
	case result.DryRun:
		b.WriteString(ui.Info.Sprint("ℹ") + " Dry run: " + summary + ", nothing written\n")
		b.WriteString(ui.Info.Sprint("→") + " Run without " + ui.Flag.Sprint("--dry-run") + " to write " + ui.Path.Sprint(result.ConfigPath))
	case result.Migrated == 0:
		b.WriteString(ui.Error.Sprint("✗") + " No credentials recovered: " + summary)
	default:
		b.WriteString(ui.Success.Sprint("✓") + " Migrated legacy credentials: " + summary + "\n")
		b.WriteString(ui.Info.Sprint("→") + " Saved to " + ui.Path.Sprint(result.ConfigPath) + " " + ui.Muted.Sprint("run "+result.RunID))
	}

	return b.String()
}

// formatMigrateError formats a migrate error for display to the user.
func formatMigrateError(err error) string {
	if errors.Is(err, perrors.ErrNoFieldsFound) {
		return ui.Warning.Sprint("⚠") + " No encrypted fields found\n" +
			ui.Info.Sprint("→") + " Name fields explicitly with " + ui.Flag.Sprint("--field")
	}

	msg, _ := formatCommonError(err, migrateKeyVar)
	return msg
}

// isMigrateUnexpectedError returns true if the error is unexpected and should
// cause a non-zero exit.
func isMigrateUnexpectedError(err error) bool {
	if errors.Is(err, perrors.ErrNoFieldsFound) {
		return false
	}
	_, expected := formatCommonError(err, migrateKeyVar)
	return !expected
}
