package legacy

import (
	"fmt"

	perrors "github.com/PolarWolf314/panelctl/internal/errors"
)

// Logger receives diagnostics from the decryptor. logging.Logger satisfies it.
type Logger interface {
	Debugf(msg string, args ...any)
	Warnf(msg string, args ...any)
}

type discardLogger struct{}

func (discardLogger) Debugf(string, ...any) {}
func (discardLogger) Warnf(string, ...any)  {}

// Reason classifies why a decryption did not produce plaintext.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonDecode
	ReasonKey
	ReasonCipher
	ReasonUnexpected
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonDecode:
		return "decode"
	case ReasonKey:
		return "key"
	case ReasonCipher:
		return "cipher"
	case ReasonUnexpected:
		return "unexpected"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Outcome is the result of one decryption.
type Outcome struct {
	// Plaintext is set only when Reason is ReasonNone.
	Plaintext string

	Reason Reason

	// Err wraps the matching sentinel from internal/errors when Reason is
	// not ReasonNone.
	Err error

	// KeyNormalized is set when the master key was not exactly KeySize bytes.
	KeyNormalized bool

	// MACChecked is set when the envelope carried a MAC.
	MACChecked bool

	// MACMismatch is set when the MAC did not verify. The plaintext is
	// still returned.
	MACMismatch bool

	// Unwrapped is set when the serializer framing was stripped.
	Unwrapped bool
}

// OK reports whether plaintext was recovered.
func (o Outcome) OK() bool {
	return o.Reason == ReasonNone
}

func (o Outcome) fail(reason Reason, err error) Outcome {
	o.Plaintext = ""
	o.Reason = reason
	o.Err = err
	return o
}

// Decryptor decrypts values produced by the legacy PHP encrypter.
type Decryptor struct {
	log Logger
}

// NewDecryptor returns a Decryptor reporting diagnostics to log. A nil log
// discards them.
func NewDecryptor(log Logger) *Decryptor {
	if log == nil {
		log = discardLogger{}
	}
	return &Decryptor{log: log}
}

// DecryptString returns the recovered plaintext, or false if decryption failed.
func (d *Decryptor) DecryptString(encrypted, masterKey string) (string, bool) {
	out := d.Decrypt(encrypted, masterKey)
	return out.Plaintext, out.OK()
}

// Decrypt runs the full pipeline for one encrypted value. It never panics.
func (d *Decryptor) Decrypt(encrypted, masterKey string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Warnf("Unexpected failure while decrypting legacy value: %v", r)
			out = out.fail(ReasonUnexpected, fmt.Errorf("%w: %v", perrors.ErrUnexpected, r))
		}
	}()

	env, err := DecodeEnvelope(encrypted)
	if err != nil {
		d.log.Debugf("Could not decode envelope: %v", err)
		return out.fail(ReasonDecode, fmt.Errorf("%w: %w", perrors.ErrDecodeFailed, err))
	}

	key, err := DeriveKey(masterKey)
	if err != nil {
		d.log.Debugf("Could not derive key: %v", err)
		return out.fail(ReasonKey, fmt.Errorf("%w: %w", perrors.ErrKeyDeriveFailed, err))
	}
	defer key.Wipe()

	if key.Normalized() {
		out.KeyNormalized = true
		d.log.Warnf("Master key is %d bytes, normalized to %d; check the APP_KEY format", key.SourceLen, KeySize)
	}

	iv, ciphertext, err := env.decodeCiphertext()
	if err != nil {
		d.log.Debugf("Could not decode ciphertext: %v", err)
		return out.fail(ReasonCipher, fmt.Errorf("%w: %w", perrors.ErrCipherFailed, err))
	}

	plaintext, err := decryptCBC(key.Bytes, iv, ciphertext)
	if err != nil {
		d.log.Debugf("Could not decrypt ciphertext: %v", err)
		return out.fail(ReasonCipher, fmt.Errorf("%w: %w", perrors.ErrCipherFailed, err))
	}

	if env.HasMAC() {
		out.MACChecked = true
		if !macMatches(key.Bytes, env, iv, ciphertext) {
			out.MACMismatch = true
			d.log.Warnf("MAC mismatch on legacy value; keeping decrypted plaintext")
		}
	}

	text := string(plaintext)
	if content, ok := Unwrap(text); ok {
		text = content
		out.Unwrapped = true
	} else {
		d.log.Debugf("Plaintext is not serializer framed, returning it unchanged")
	}

	out.Plaintext = text
	return out
}
