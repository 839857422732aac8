package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	perrors "github.com/PolarWolf314/panelctl/internal/errors"
	"github.com/PolarWolf314/panelctl/internal/legacy"
	logger "github.com/PolarWolf314/panelctl/internal/logging"
	"github.com/PolarWolf314/panelctl/internal/ui"
	"github.com/PolarWolf314/panelctl/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(l logger.Logger, message string) (*spinner.Spinner, func()) {
	quiet := !l.Verbose && !l.Debug

	l.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		l.Warnf("Failed to set spinner color: %v", err)
	}

	if quiet {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		l.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if quiet {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if quiet {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// promptMasterKey asks for the master key on the terminal. A running
// spinner is paused while the prompt is shown; s may be nil.
func promptMasterKey(s *spinner.Spinner, keyVar string) (string, error) {
	if !utils.IsTerminal() {
		return "", perrors.ErrMasterKeyMissing
	}

	wasActive := s != nil && s.Active()
	if wasActive {
		s.Stop()
	}

	key, err := utils.ReadSecret("Master key (" + keyVar + "): ")
	if err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", perrors.ErrMasterKeyMissing
	}

	if wasActive {
		s.Start()
	}
	return string(key), nil
}

// formatMasterKeyMissing is the message shown when no master key is available.
func formatMasterKeyMissing(keyVar string) string {
	return ui.Error.Sprint("✗") + " No master key found\n" +
		ui.Info.Sprint("→") + " Pass " + ui.Flag.Sprint("--key") + " or set " + ui.Highlight.Sprint(keyVar) + " in the dotenv file"
}

// formatCommonError maps shared sentinel errors onto user-facing messages.
// The bool result is false for errors that are not expected.
func formatCommonError(err error, keyVar string) (string, bool) {
	switch {
	case errors.Is(err, perrors.ErrMasterKeyMissing):
		return formatMasterKeyMissing(keyVar), true

	case errors.Is(err, perrors.ErrNoFilesFound):
		return ui.Error.Sprint("✗") + " No dotenv files matched the given paths", true

	case errors.Is(err, perrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " panelctl's config file is invalid\n" +
			ui.Error.Sprint("Error: ") + err.Error(), true

	case errors.Is(err, perrors.ErrInvalidTarget):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Credential names use lowercase letters, digits, " + ui.Code.Sprint("_") + ", " + ui.Code.Sprint(".") + " and " + ui.Code.Sprint("-"), true

	default:
		return ui.Error.Sprint("✗") + " " + err.Error(), false
	}
}

// reportNotices shows key normalization and MAC mismatch notices even
// without --verbose. Under --verbose the decryptor has already logged them.
func reportNotices(l logger.Logger, outcomes ...legacy.Outcome) {
	if l.Verbose || l.Debug {
		return
	}

	normalized, mismatched := 0, 0
	for _, o := range outcomes {
		if o.KeyNormalized {
			normalized++
		}
		if o.MACMismatch {
			mismatched++
		}
	}

	if normalized > 0 {
		l.WarnfAlways("Master key is not %d bytes and was normalized; check the APP_KEY format", legacy.KeySize)
	}
	if mismatched > 0 {
		l.WarnfAlways("MAC mismatch on %d value(s); the decrypted plaintext was kept", mismatched)
	}
}
