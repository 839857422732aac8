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
	decryptEnvFiles []string
	decryptKey      string
	decryptKeyVar   string
	decryptStdin    bool
)

func init() {
	decryptCmd.Flags().StringSliceVar(&decryptEnvFiles, "env", nil, "dotenv file(s) to read the master key from (default .env)")
	decryptCmd.Flags().StringVar(&decryptKey, "key", "", "master key, overrides the dotenv file")
	decryptCmd.Flags().StringVar(&decryptKeyVar, "key-var", workflows.DefaultMasterKeyVar, "dotenv variable holding the master key")
	decryptCmd.Flags().BoolVar(&decryptStdin, "stdin", false, "read the encrypted value from stdin")
	LegacyCmd.AddCommand(decryptCmd)
}

// resetDecryptCommandState resets the decrypt command's global state for testing.
func resetDecryptCommandState() {
	decryptEnvFiles = nil
	decryptKey = ""
	decryptKeyVar = workflows.DefaultMasterKeyVar
	decryptStdin = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [value]",
	Short: "Decrypt a single legacy encrypted value",
	Long: `Decrypts one value produced by the legacy panel's encrypter and prints
the plaintext.

The master key comes from --key, else from APP_KEY in the dotenv file,
else it is prompted for on the terminal.

Examples:
  panelctl legacy decrypt eyJpdiI6... --env /srv/panel/.env
  panelctl legacy decrypt eyJpdiI6... --key base64:...
  echo eyJpdiI6... | panelctl legacy decrypt --stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting decrypt command")

	value, err := decryptInput(args)
	if err != nil {
		fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
		return nil
	}

	opts := workflows.DecryptOptions{
		Value:        value,
		MasterKey:    decryptKey,
		EnvPatterns:  decryptEnvFiles,
		Dir:          ".",
		MasterKeyVar: decryptKeyVar,
		Logger:       Logger,
	}

	result, err := workflows.Decrypt(context.Background(), opts)
	if errors.Is(err, perrors.ErrMasterKeyMissing) {
		Logger.Debugf("No master key found, prompting")
		if key, perr := promptMasterKey(nil, decryptKeyVar); perr == nil {
			opts.MasterKey = key
			result, err = workflows.Decrypt(context.Background(), opts)
		}
	}
	if err != nil {
		msg, expected := formatCommonError(err, decryptKeyVar)
		fmt.Println(msg)
		if expected {
			return nil
		}
		return err
	}

	Logger.Debugf("Master key source: %s", result.KeySource)

	if !result.Outcome.OK() {
		fmt.Println(formatDecryptFailure(result.Outcome))
		return nil
	}

	reportNotices(Logger, result.Outcome)
	fmt.Println(result.Outcome.Plaintext)
	return nil
}

// decryptInput returns the encrypted value from the argument or stdin.
func decryptInput(args []string) (string, error) {
	if decryptStdin {
		data, err := utils.ReadStdin()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	if len(args) == 0 {
		return "", fmt.Errorf("no value given, pass it as an argument or use %s", ui.Flag.Sprint("--stdin"))
	}
	return args[0], nil
}

// formatDecryptFailure describes why a value could not be decrypted.
func formatDecryptFailure(o legacy.Outcome) string {
	msg := ui.Error.Sprint("✗") + " Could not decrypt value " + ui.Muted.Sprint(o.Reason.String())

	switch o.Reason {
	case legacy.ReasonDecode:
		msg += "\n" + ui.Info.Sprint("→") + " The value is not a legacy encrypted envelope"
	case legacy.ReasonKey:
		msg += "\n" + ui.Info.Sprint("→") + " The master key could not be read, check its " + ui.Code.Sprint("base64:") + " prefix"
	case legacy.ReasonCipher:
		msg += "\n" + ui.Info.Sprint("→") + " The master key is probably wrong for this value"
	}

	if o.Err != nil {
		Logger.Debugf("Decrypt error: %v", o.Err)
	}
	return msg
}
