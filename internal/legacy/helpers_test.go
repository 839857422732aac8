package legacy

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
)

// testKey and testIV are fixed so envelopes are deterministic.
var (
	testKey = []byte("0123456789abcdef0123456789abcdef")
	testIV  = []byte("fedcba9876543210")
)

func testMasterKey() string {
	return "base64:" + base64.StdEncoding.EncodeToString(testKey)
}

// sealEnvelope encrypts plaintext the way the PHP encrypter does and returns
// the envelope JSON text.
func sealEnvelope(t *testing.T, key, iv []byte, plaintext string, withMAC bool) string {
	t.Helper()

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	env := Envelope{
		IV:    base64.StdEncoding.EncodeToString(iv),
		Value: base64.StdEncoding.EncodeToString(ciphertext),
	}
	if withMAC {
		env.MAC = computeMAC(key, []byte(env.IV+env.Value))
	}

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Failed to marshal envelope: %v", err)
	}
	return string(data)
}

// sealEncoded returns the base64-wrapped form of sealEnvelope.
func sealEncoded(t *testing.T, key, iv []byte, plaintext string, withMAC bool) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(sealEnvelope(t, key, iv, plaintext, withMAC)))
}

// encryptBlocks CBC-encrypts block-aligned data without padding and returns
// it base64-encoded. Decrypting it yields data unchanged, so padding checks
// see exactly the bytes given.
func encryptBlocks(t *testing.T, key, iv, data []byte) string {
	t.Helper()

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("Failed to create cipher: %v", err)
	}

	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, data)
	return base64.StdEncoding.EncodeToString(out)
}

// serialized frames s the way PHP serialize() does.
func serialized(s string) string {
	return fmt.Sprintf("s:%d:\"%s\";", len(s), s)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(pad)}, pad)...)
}

// recordingLogger captures diagnostics for assertions.
type recordingLogger struct {
	debug []string
	warn  []string
}

func (r *recordingLogger) Debugf(msg string, args ...any) {
	r.debug = append(r.debug, fmt.Sprintf(msg, args...))
}

func (r *recordingLogger) Warnf(msg string, args ...any) {
	r.warn = append(r.warn, fmt.Sprintf(msg, args...))
}
