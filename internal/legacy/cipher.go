package legacy

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidIV         = errors.New("invalid initialization vector")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrInvalidPadding    = errors.New("invalid padding")
)

// decryptCBC decrypts ciphertext with AES-256-CBC and strips PKCS7 padding.
func decryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidIV, aes.BlockSize, len(iv))
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of the block size", ErrInvalidCiphertext, len(ciphertext))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrInvalidPadding
	}

	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize {
		return nil, ErrInvalidPadding
	}

	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, ErrInvalidPadding
		}
	}

	return data[:len(data)-pad], nil
}

// macMatches checks the envelope MAC. The PHP encrypter signs the base64
// text of iv and value; some older writers signed the raw bytes instead.
// Either form is accepted.
func macMatches(key []byte, env *Envelope, iv, ciphertext []byte) bool {
	want := []byte(strings.ToLower(strings.TrimSpace(env.MAC)))

	if hmac.Equal([]byte(computeMAC(key, []byte(env.IV+env.Value))), want) {
		return true
	}

	raw := make([]byte, 0, len(iv)+len(ciphertext))
	raw = append(raw, iv...)
	raw = append(raw, ciphertext...)

	return hmac.Equal([]byte(computeMAC(key, raw)), want)
}

// computeMAC returns HMAC-SHA256(key, data) as lowercase hex.
func computeMAC(key, data []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}
