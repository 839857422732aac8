package legacy

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyValue        = errors.New("encrypted value is empty")
	ErrUnknownEncoding   = errors.New("value is neither base64 nor JSON")
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// Envelope is one encrypted value. IV and Value are base64 text, MAC is
// lowercase hex. An empty MAC or Tag means the field was absent.
type Envelope struct {
	IV    string `json:"iv"`
	Value string `json:"value"`
	MAC   string `json:"mac,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// HasMAC reports whether the envelope carries a MAC to verify.
func (e *Envelope) HasMAC() bool {
	return e.MAC != ""
}

// DecodeEnvelope parses raw as base64-wrapped envelope JSON, falling back to
// raw JSON text when raw is not valid base64 and starts with '{'.
func DecodeEnvelope(raw string) (*Envelope, error) {
	if raw == "" {
		return nil, ErrEmptyValue
	}

	source, err := envelopeSource(raw)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := json.Unmarshal(source, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	if env.IV == "" {
		return nil, fmt.Errorf("%w: missing iv", ErrMalformedEnvelope)
	}
	if env.Value == "" {
		return nil, fmt.Errorf("%w: missing value", ErrMalformedEnvelope)
	}

	return &env, nil
}

// IsEnvelope reports whether s decodes as an envelope. It does not attempt
// decryption.
func IsEnvelope(s string) bool {
	_, err := DecodeEnvelope(s)
	return err == nil
}

func envelopeSource(raw string) ([]byte, error) {
	decoded, err := base64.StdEncoding.Strict().DecodeString(strings.TrimSpace(raw))
	if err == nil {
		return decoded, nil
	}

	if strings.HasPrefix(strings.TrimLeft(raw, " \t\r\n"), "{") {
		return []byte(raw), nil
	}

	return nil, ErrUnknownEncoding
}

// decodeCiphertext base64-decodes the IV and ciphertext.
func (e *Envelope) decodeCiphertext() (iv, ciphertext []byte, err error) {
	iv, err = base64.StdEncoding.DecodeString(e.IV)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidIV, err)
	}

	ciphertext, err = base64.StdEncoding.DecodeString(e.Value)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidCiphertext, err)
	}

	return iv, ciphertext, nil
}
