// Package subtle provides the low-level index arithmetic of the Vigenère ciphers.
// It works on letter positions (base-radix digits) and knows nothing about
// characters; use the parent package to encrypt text.
package subtle

import (
	"fmt"
)

// Vigenere enciphers letter positions with a repeating key or, in autokey
// mode, with the key followed by the plaintext itself.
//
// A Vigenere is immutable and safe for concurrent use.
type Vigenere struct {
	key     []uint16
	radix   int
	autokey bool
}

// NewVigenere creates a cipher for the given key over an alphabet of radix letters.
// The key must be non-empty and every position must be below radix.
func NewVigenere(key []uint16, radix int, autokey bool) (*Vigenere, error) {
	if radix < 1 {
		return nil, fmt.Errorf("radix must be at least 1, got %d", radix)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("key must not be empty")
	}
	if err := checkRange(key, radix); err != nil {
		return nil, fmt.Errorf("key: %w", err)
	}

	k := make([]uint16, len(key))
	copy(k, key)
	return &Vigenere{key: k, radix: radix, autokey: autokey}, nil
}

// Radix returns the alphabet size the cipher works under.
func (v *Vigenere) Radix() int { return v.radix }

// Autokey reports whether the cipher runs in autokey mode.
func (v *Vigenere) Autokey() bool { return v.autokey }

// Encrypt computes c[i] = (p[i] + k[i]) mod radix.
//
// In classic mode k[i] = key[i mod len(key)]. In autokey mode the key covers
// the first len(key) positions and k[i] = p[i-len(key)] afterwards.
func (v *Vigenere) Encrypt(plaintext []uint16) ([]uint16, error) {
	if err := checkRange(plaintext, v.radix); err != nil {
		return nil, fmt.Errorf("plaintext: %w", err)
	}

	ciphertext := make([]uint16, len(plaintext))
	for i, p := range plaintext {
		k := v.keyAt(i, plaintext)
		ciphertext[i] = shift(p, int(k), v.radix)
	}
	return ciphertext, nil
}

// Decrypt computes p[i] = (c[i] - k[i]) mod radix.
//
// In autokey mode the key stream past the key is the plaintext, so each
// position depends on the one recovered len(key) steps earlier and the
// output is built strictly left to right.
func (v *Vigenere) Decrypt(ciphertext []uint16) ([]uint16, error) {
	if err := checkRange(ciphertext, v.radix); err != nil {
		return nil, fmt.Errorf("ciphertext: %w", err)
	}

	plaintext := make([]uint16, len(ciphertext))
	for i, c := range ciphertext {
		k := v.keyAt(i, plaintext)
		plaintext[i] = shift(c, -int(k), v.radix)
	}
	return plaintext, nil
}

// keyAt returns the key stream value for position i. running holds the
// plaintext known so far; only positions below i are read.
func (v *Vigenere) keyAt(i int, running []uint16) uint16 {
	n := len(v.key)
	if !v.autokey || i < n {
		return v.key[i%n]
	}
	return running[i-n]
}

func checkRange(digits []uint16, radix int) error {
	for i, d := range digits {
		if int(d) >= radix {
			return fmt.Errorf("position %d: value %d out of range for radix %d", i, d, radix)
		}
	}
	return nil
}
