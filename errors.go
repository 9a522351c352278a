package vigenere

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrUnsupportedAlphabet = errors.New("unsupported alphabet")
	ErrIllegalCharacter    = errors.New("illegal character")
	ErrInvalidKey          = errors.New("invalid key")
)

// UnsupportedAlphabetError is returned when an alphabet name is not recognized.
type UnsupportedAlphabetError struct {
	Name string
}

func (e *UnsupportedAlphabetError) Error() string {
	return fmt.Sprintf("unsupported alphabet %q (supported: %s)", e.Name, strings.Join(AlphabetNames(), ", "))
}

func (e *UnsupportedAlphabetError) Is(target error) bool {
	return target == ErrUnsupportedAlphabet
}

// IllegalCharacterError identifies the first character of an input that is
// not a member of the alphabet. Position is a rune offset into the
// normalized input, or -1 when the character was looked up on its own.
type IllegalCharacterError struct {
	Input    string
	Char     rune
	Position int
	Alphabet string
}

func (e *IllegalCharacterError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "illegal letter %q", e.Char)
	if e.Input != "" {
		fmt.Fprintf(&b, " in %s", e.Input)
	}
	if e.Position >= 0 {
		fmt.Fprintf(&b, " at position %d", e.Position)
	}
	fmt.Fprintf(&b, " (alphabet %s)", e.Alphabet)
	return b.String()
}

func (e *IllegalCharacterError) Is(target error) bool {
	return target == ErrIllegalCharacter
}

// InvalidKeyError is returned for keys that cannot drive the cipher.
type InvalidKeyError struct {
	Reason string
}

func (e *InvalidKeyError) Error() string {
	return "invalid key: " + e.Reason
}

func (e *InvalidKeyError) Is(target error) bool {
	return target == ErrInvalidKey
}
