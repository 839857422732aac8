// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for setting up test environments,
// capturing output, and building sealed legacy values.
package cmd

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/panelctl/internal/configs"
)

// testKey is the raw 32-byte key sealed values are encrypted with.
var testKey = []byte("0123456789abcdef0123456789abcdef")

// testMasterKey returns testKey in APP_KEY form.
func testMasterKey() string {
	return "base64:" + base64.StdEncoding.EncodeToString(testKey)
}

// setupTestEnvironment points panelctl's config at a temp directory, resets
// command state and returns a temp working directory for dotenv files.
func setupTestEnvironment(t *testing.T) (workDir, configDir string) {
	t.Helper()

	workDir = t.TempDir()
	configDir = t.TempDir()

	t.Setenv(configs.ConfigDirEnv, configDir)
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	ResetConfigState()
	ResetLogState()
	t.Cleanup(func() {
		ResetGlobalState()
		ResetConfigState()
		ResetLogState()
	})

	return workDir, configDir
}

// writeEnvFile writes lines to a .env file in dir and returns its path.
func writeEnvFile(t *testing.T, dir string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	return path
}

// sealValue encrypts plaintext the way the legacy panel does and returns the
// base64-wrapped envelope.
func sealValue(t *testing.T, plaintext string) string {
	t.Helper()

	block, err := aes.NewCipher(testKey)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	iv := []byte("fedcba9876543210")
	framed := []byte(fmt.Sprintf("s:%d:\"%s\";", len(plaintext), plaintext))
	pad := aes.BlockSize - len(framed)%aes.BlockSize
	framed = append(framed, bytes.Repeat([]byte{byte(pad)}, pad)...)

	ciphertext := make([]byte, len(framed))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, framed)

	ivText := base64.StdEncoding.EncodeToString(iv)
	valueText := base64.StdEncoding.EncodeToString(ciphertext)
	mac := hmac.New(sha256.New, testKey)
	mac.Write([]byte(ivText + valueText))

	data, err := json.Marshal(map[string]string{
		"iv":    ivText,
		"value": valueText,
		"mac":   hex.EncodeToString(mac.Sum(nil)),
	})
	if err != nil {
		t.Fatalf("Failed to marshal envelope: %v", err)
	}
	return base64.StdEncoding.EncodeToString(data)
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	// Close writers to signal EOF.
	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI creates a root command wired with every command group and
// set to run args.
func createTestCLI(args ...string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "panelctl",
		Short: "panelctl - A CLI for operating game servers through a hosted panel.",
	}

	rootCmd.AddCommand(LegacyCmd)
	rootCmd.AddCommand(ConfigCmd)
	rootCmd.AddCommand(LogCmd)
	rootCmd.SetArgs(args)

	return rootCmd
}

// runCLI executes args and returns the captured output.
func runCLI(t *testing.T, args ...string) string {
	t.Helper()

	output, err := captureOutput(func() error {
		return createTestCLI(args...).Execute()
	})
	if err != nil {
		t.Fatalf("panelctl %s failed: %v\nOutput: %s", strings.Join(args, " "), err, output)
	}
	return output
}
