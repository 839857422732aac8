package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/panelctl/internal/ui"
	"github.com/PolarWolf314/panelctl/internal/workflows"
)

var (
	envShowValues bool
	envKeyVar     string
)

func init() {
	envCmd.Flags().BoolVar(&envShowValues, "show-values", false, "print values instead of masking them")
	envCmd.Flags().StringVar(&envKeyVar, "key-var", workflows.DefaultMasterKeyVar, "dotenv variable holding the master key")
	LegacyCmd.AddCommand(envCmd)
}

// resetEnvCommandState resets the env command's global state for testing.
func resetEnvCommandState() {
	envShowValues = false
	envKeyVar = workflows.DefaultMasterKeyVar
}

var envCmd = &cobra.Command{
	Use:   "env [file...]",
	Short: "List the variables of a legacy dotenv file",
	Long: `Lists the variables of one or more dotenv files and marks the ones
holding encrypted legacy values. Nothing is decrypted.

Files can be paths, directories or glob patterns. With no arguments the
.env file in the current directory is read.

Examples:
  panelctl legacy env
  panelctl legacy env /srv/panel/.env
  panelctl legacy env "/srv/panel/**/.env*" --show-values`,
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting env command")
	Logger.Debugf("Patterns: %v, show-values=%t", args, envShowValues)

	result, err := workflows.Inspect(context.Background(), workflows.InspectOptions{
		EnvPatterns:  args,
		Dir:          ".",
		MasterKeyVar: envKeyVar,
		Logger:       Logger,
	})
	if err != nil {
		msg, expected := formatCommonError(err, envKeyVar)
		fmt.Println(msg)
		if expected {
			return nil
		}
		return err
	}

	for i, file := range result.Files {
		if i > 0 {
			fmt.Println()
		}
		printEnvFile(file)
	}

	if len(result.Files) > 1 {
		fmt.Println()
		fmt.Printf("%d variables, %d encrypted\n", result.Summary.Variables, result.Summary.Encrypted)
	}

	return nil
}

func printEnvFile(file workflows.EnvFileInfo) {
	fmt.Println(ui.Path.Sprint(file.Path) + ":")

	if !file.Exists {
		fmt.Println("  " + ui.Warning.Sprint("⚠") + " File not found, nothing configured")
		return
	}
	if len(file.Variables) == 0 {
		fmt.Println("  " + ui.Muted.Sprint("no variables"))
		return
	}

	width := 0
	for _, v := range file.Variables {
		if len(v.Name) > width {
			width = len(v.Name)
		}
	}

	for _, v := range file.Variables {
		value := ui.Mask(v.Value)
		if envShowValues {
			value = v.Value
		}

		marker := " "
		note := ""
		switch {
		case v.MasterKey:
			marker = ui.Info.Sprint("🔑")
			note = " " + ui.Muted.Sprint("master key")
		case v.Encrypted:
			marker = ui.Warning.Sprint("🔒")
			note = " " + ui.Muted.Sprint("encrypted")
		}

		fmt.Printf("  %s %-*s  %s%s\n", marker, width, v.Name, value, note)
	}
}
