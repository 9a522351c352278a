// Package vigenere implements the classic Vigenère cipher and the Autokey
// Vigenère cipher over a fixed alphabet.
// This file defines the Cipher interface used for Tink integration.
// For Tink integration, see the tinkvigenere package.

package vigenere

// Cipher is a Tink-compatible primitive bound to one key, one alphabet and
// one variant. Like tink.DeterministicAEAD it is deterministic: the same
// plaintext under the same key always gives the same ciphertext.
type Cipher interface {
	// Encrypt enciphers plaintext. The result is uppercase.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt.
	Decrypt(ciphertext string) (string, error)
}
