package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/panelctl/internal/audit"
	perrors "github.com/PolarWolf314/panelctl/internal/errors"
	logger "github.com/PolarWolf314/panelctl/internal/logging"
	"github.com/PolarWolf314/panelctl/internal/ui"
	"github.com/PolarWolf314/panelctl/internal/workflows"
)

var (
	logVerbose   bool
	logDebug     bool
	logLimit     int
	logReverse   bool
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
	LogLogger    logger.Logger
)

func init() {
	LogCmd.Flags().BoolVarP(&logVerbose, "verbose", "v", false, "enable verbose output")
	LogCmd.Flags().BoolVarP(&logDebug, "debug", "d", false, "enable debug output")
	LogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	LogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	LogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	LogCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	LogCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	LogCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	LogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// ResetLogState resets the log command's global state for testing.
func ResetLogState() {
	logVerbose = false
	logDebug = false
	logLimit = 0
	logReverse = false
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
	resetCobraFlagState(LogCmd)
}

// LogCmd shows the audit log of decrypt and migrate runs.
var LogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of legacy decrypt and migrate runs.

Shows who ran what and when. Use filters to narrow down the results.

Examples:
  panelctl log                              # View full log
  panelctl log -n 10                        # Last 10 entries
  panelctl log --reverse                    # Most recent first
  panelctl log --operation migrate          # Filter by operation
  panelctl log --since 2024-01-01           # Filter by date
  panelctl log --json                       # JSON output`,
	PreRun: func(cmd *cobra.Command, args []string) {
		LogLogger = logger.Logger{
			Verbose: logVerbose,
			Debug:   logDebug,
		}
	},
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	LogLogger.Infof("Starting log command")

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		fmt.Println(formatLogError(err))
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}

	LogLogger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	LogLogger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	switch {
	case logJSON:
		return outputLogJSON(result.Entries)
	case logOneline:
		outputLogOneline(result.Entries)
	default:
		outputLogDefault(result.Entries)
	}
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, perrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Runs are logged after any " + ui.Code.Sprint("panelctl legacy") + " decrypt or migrate."

	case errors.Is(err, perrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	return !errors.Is(err, perrors.ErrNoFilesFound) && !errors.Is(err, perrors.ErrInvalidDateFormat)
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s %s %s\n", workflows.FormatDate(e.Timestamp), e.Operator, e.Operation, workflows.FormatDetails(e))
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%-19s  %-16s  %-8s  %s\n", workflows.FormatDateTime(e.Timestamp), e.Operator, e.Operation, workflows.FormatDetails(e))
	}
}
