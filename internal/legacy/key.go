package legacy

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// KeySize is the AES-256 key length.
const KeySize = 32

const base64KeyPrefix = "base64:"

var ErrInvalidMasterKey = errors.New("master key is not valid base64")

// DerivedKey is a cipher key normalized to KeySize bytes.
type DerivedKey struct {
	Bytes []byte

	// SourceLen is the key length before normalization.
	SourceLen int
}

// Normalized reports whether the source key had to be truncated or padded.
func (k DerivedKey) Normalized() bool {
	return k.SourceLen != KeySize
}

// Wipe zeroes the key bytes.
func (k DerivedKey) Wipe() {
	for i := range k.Bytes {
		k.Bytes[i] = 0
	}
}

// DeriveKey turns an APP_KEY style master key into a KeySize-byte key.
//
// "base64:" prefixed keys (prefix matched case-insensitively) are decoded;
// anything else is used as raw UTF-8 bytes. Longer keys keep their first
// KeySize bytes, shorter keys are right-padded with zeros, so an empty key
// becomes KeySize zero bytes. Only malformed base64 after the prefix fails.
func DeriveKey(masterKey string) (DerivedKey, error) {
	var raw []byte

	if len(masterKey) >= len(base64KeyPrefix) && strings.EqualFold(masterKey[:len(base64KeyPrefix)], base64KeyPrefix) {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(masterKey[len(base64KeyPrefix):]))
		if err != nil {
			return DerivedKey{}, fmt.Errorf("%w: %v", ErrInvalidMasterKey, err)
		}
		raw = decoded
	} else {
		raw = []byte(masterKey)
	}

	key := make([]byte, KeySize)
	copy(key, raw)

	sourceLen := len(raw)
	for i := range raw {
		raw[i] = 0
	}

	return DerivedKey{Bytes: key, SourceLen: sourceLen}, nil
}
