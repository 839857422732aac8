package workflows

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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/panelctl/internal/configs"
)

var (
	testKey = []byte("0123456789abcdef0123456789abcdef")
	testIV  = []byte("fedcba9876543210")
)

func testMasterKey() string {
	return "base64:" + base64.StdEncoding.EncodeToString(testKey)
}

// seal encrypts plaintext as a serialized string and returns the
// base64-wrapped envelope with a MAC.
func seal(t *testing.T, key []byte, plaintext string) string {
	t.Helper()

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	framed := []byte(fmt.Sprintf("s:%d:\"%s\";", len(plaintext), plaintext))
	pad := aes.BlockSize - len(framed)%aes.BlockSize
	framed = append(framed, bytes.Repeat([]byte{byte(pad)}, pad)...)

	ciphertext := make([]byte, len(framed))
	cipher.NewCBCEncrypter(block, testIV).CryptBlocks(ciphertext, framed)

	iv := base64.StdEncoding.EncodeToString(testIV)
	value := base64.StdEncoding.EncodeToString(ciphertext)
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(iv + value))

	data, err := json.Marshal(map[string]string{
		"iv":    iv,
		"value": value,
		"mac":   hex.EncodeToString(mac.Sum(nil)),
	})
	if err != nil {
		t.Fatalf("Failed to marshal envelope: %v", err)
	}
	return base64.StdEncoding.EncodeToString(data)
}

// writeEnv writes lines to name inside dir and returns the file path.
func writeEnv(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// testSettings points config and audit files at a temp directory.
func testSettings(t *testing.T) *configs.Settings {
	t.Helper()
	return &configs.Settings{ConfigDir: t.TempDir()}
}

type recordingLogger struct {
	debug []string
	warn  []string
}

func (l *recordingLogger) Debugf(msg string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(msg, args...))
}

func (l *recordingLogger) Warnf(msg string, args ...any) {
	l.warn = append(l.warn, fmt.Sprintf(msg, args...))
}
