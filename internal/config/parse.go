package config

import (
	"fmt"
	"strings"

	"github.com/vdparikh/vigenere"
)

// ParseAlphabet accepts finnish, f, fi, english, e or en in any case, or the
// exact name of a built-in alphabet.
func ParseAlphabet(s string) (*vigenere.Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "finnish", "f", "fi":
		return vigenere.Finnish, nil
	case "english", "e", "en":
		return vigenere.English, nil
	}
	return vigenere.LookupAlphabet(s)
}

// ParseCipher accepts autokey, a, vigenere or v in any case.
func ParseCipher(s string) (vigenere.Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "autokey", "a":
		return vigenere.Autokey, nil
	case "vigenere", "vigenère", "v":
		return vigenere.Classic, nil
	}
	return 0, fmt.Errorf("unknown cipher %q (want autokey or vigenere)", s)
}

// ParseMode accepts encrypt, e, en, decrypt, d or de in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "e", "en":
		return ModeEncrypt, nil
	case "decrypt", "d", "de":
		return ModeDecrypt, nil
	}
	return ModeUnset, fmt.Errorf("unknown mode %q (want encrypt or decrypt)", s)
}

// Parse validates the raw settings. Empty values are left unset.
func (s Settings) Parse() (*Session, error) {
	sess := &Session{
		Key:     s.Key,
		Text:    s.Text,
		HasText: s.TextSet,
		NoInput: s.NoInput,
	}

	if s.Alphabet != "" {
		a, err := ParseAlphabet(s.Alphabet)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyAlphabet, err)
		}
		sess.Alphabet = a
	}
	if s.Cipher != "" {
		variant, err := ParseCipher(s.Cipher)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyCipher, err)
		}
		sess.Variant = variant
		sess.HasVariant = true
	}
	if s.Mode != "" {
		mode, err := ParseMode(s.Mode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyMode, err)
		}
		sess.Mode = mode
	}

	if sess.NoInput {
		if missing := sess.Missing(); len(missing) > 0 {
			return nil, fmt.Errorf("missing %s (prompting disabled by --no-input)", strings.Join(missing, ", "))
		}
	}
	return sess, nil
}
