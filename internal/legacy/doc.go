// Package legacy recovers plaintext secrets encrypted by the panel's former
// PHP application so they can be migrated into panelctl.
//
// # Envelope Format
//
// Every encrypted value is a JSON object:
//
//	{"iv": "<base64>", "value": "<base64 ciphertext>", "mac": "<hex>", "tag": ""}
//
// The object usually arrives base64-encoded, but some exports carry the raw
// JSON text. DecodeEnvelope accepts both forms and produces the same
// Envelope for either.
//
// # Decryption Pipeline
//
//  1. DecodeEnvelope parses the value.
//  2. DeriveKey turns the APP_KEY master key ("base64:..." or a raw string)
//     into exactly 32 bytes, truncating or zero-padding as needed.
//  3. The ciphertext is decrypted with AES-256-CBC and PKCS7 padding is removed.
//  4. When a MAC is present it is checked with HMAC-SHA256. A mismatch is
//     reported as a warning only; the plaintext is still returned.
//  5. Unwrap strips the serializer's s:<N>:"<content>"; framing when the
//     declared length matches exactly.
//
// Failures never panic out of Decryptor.Decrypt. The Outcome carries a
// Reason (decode, key, cipher, unexpected) so bulk migrations can report a
// field as "could not decrypt" and carry on with the next one.
//
// # Concurrency
//
// A Decryptor holds no mutable state. Cipher instances are created per
// call, so one Decryptor may be shared across goroutines.
package legacy
