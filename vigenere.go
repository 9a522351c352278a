// Package vigenere implements the classic Vigenère cipher and the Autokey
// Vigenère cipher over a fixed, ordered alphabet.
//
// Classic Vigenère adds the key to the plaintext letter by letter, repeating
// the key as often as needed. Autokey Vigenère uses the key only once and then
// continues the key stream with the plaintext itself.
//
// Two alphabets are built in: English (A-Z) and Finnish (A-Z, Å, Ä, Ö). Input
// is normalized to uppercase before use and must consist of alphabet letters
// only; there is no pass-through for spaces or punctuation.
//
// Example usage:
//
//	engine, err := vigenere.NewEngine("english")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ciphertext, err := engine.Encrypt("KEY", "hello", false)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// ciphertext is "RIJVS"
//
//	plaintext, err := engine.Decrypt("KEY", ciphertext, false)
//	// plaintext is "HELLO"
package vigenere

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vdparikh/vigenere/subtle"
)

// Variant selects how the key stream is formed.
type Variant int

const (
	// Classic repeats the key over the whole text.
	Classic Variant = iota
	// Autokey uses the key once, then the plaintext.
	Autokey
)

// String returns the name used on the command line and in keysets.
func (v Variant) String() string {
	switch v {
	case Classic:
		return "vigenere"
	case Autokey:
		return "autokey"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant accepts "vigenere", "classic", "v", "autokey" and "a", ignoring case.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vigenere", "vigenère", "classic", "v":
		return Classic, nil
	case "autokey", "a":
		return Autokey, nil
	default:
		return 0, fmt.Errorf("unknown cipher %q (want vigenere or autokey)", s)
	}
}

// VariantOf maps the autokey flag to a Variant.
func VariantOf(autokey bool) Variant {
	if autokey {
		return Autokey
	}
	return Classic
}

// Encrypt enciphers plaintext with key under alphabet a.
func Encrypt(a *Alphabet, key, plaintext string, variant Variant) (string, error) {
	c, texts, err := prepare(a, key, variant, "plaintext", plaintext)
	if err != nil {
		return "", err
	}
	out, err := c.Encrypt(texts)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}
	return a.Text(out), nil
}

// Decrypt deciphers ciphertext with key under alphabet a.
func Decrypt(a *Alphabet, key, ciphertext string, variant Variant) (string, error) {
	c, texts, err := prepare(a, key, variant, "ciphertext", ciphertext)
	if err != nil {
		return "", err
	}
	out, err := c.Decrypt(texts)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return a.Text(out), nil
}

// prepare normalizes and validates key and text. Nothing is enciphered until
// both have passed, so a bad letter never yields partial output.
func prepare(a *Alphabet, key string, variant Variant, input, text string) (*subtle.Vigenere, []uint16, error) {
	c, err := newSubtle(a, key, variant)
	if err != nil {
		return nil, nil, err
	}
	digits, err := a.indices(input, Normalize(text))
	if err != nil {
		return nil, nil, err
	}
	return c, digits, nil
}

func newSubtle(a *Alphabet, key string, variant Variant) (*subtle.Vigenere, error) {
	if a == nil {
		return nil, fmt.Errorf("no alphabet configured")
	}
	key = Normalize(key)
	if key == "" {
		return nil, &InvalidKeyError{Reason: "key must not be empty"}
	}
	keyDigits, err := a.indices("key", key)
	if err != nil {
		return nil, err
	}
	c, err := subtle.NewVigenere(keyDigits, a.Len(), variant == Autokey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return c, nil
}

// Engine holds the active alphabet for a sequence of encrypt and decrypt
// calls. The alphabet may be swapped between calls with Configure; a call
// that is already running keeps the alphabet it started with.
type Engine struct {
	mu       sync.RWMutex
	alphabet *Alphabet
}

// NewEngine creates an engine using the named alphabet.
func NewEngine(alphabet string) (*Engine, error) {
	e := &Engine{}
	if err := e.Configure(alphabet); err != nil {
		return nil, err
	}
	return e, nil
}

// Configure makes the named alphabet active. On error the previous alphabet
// stays active.
func (e *Engine) Configure(alphabet string) error {
	a, err := LookupAlphabet(alphabet)
	if err != nil {
		return err
	}
	e.SetAlphabet(a)
	return nil
}

// SetAlphabet makes a active.
func (e *Engine) SetAlphabet(a *Alphabet) {
	e.mu.Lock()
	e.alphabet = a
	e.mu.Unlock()
}

// Alphabet returns the active alphabet.
func (e *Engine) Alphabet() *Alphabet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.alphabet
}

// Encrypt enciphers plaintext with key under the active alphabet.
func (e *Engine) Encrypt(key, plaintext string, autokey bool) (string, error) {
	return Encrypt(e.Alphabet(), key, plaintext, VariantOf(autokey))
}

// Decrypt deciphers ciphertext with key under the active alphabet.
func (e *Engine) Decrypt(key, ciphertext string, autokey bool) (string, error) {
	return Decrypt(e.Alphabet(), key, ciphertext, VariantOf(autokey))
}

// KeyedCipher implements Cipher for a fixed key.
type KeyedCipher struct {
	alphabet *Alphabet
	variant  Variant
	cipher   *subtle.Vigenere
}

// NewKeyedCipher validates key against a once and returns a Cipher bound to it.
func NewKeyedCipher(a *Alphabet, key string, variant Variant) (*KeyedCipher, error) {
	c, err := newSubtle(a, key, variant)
	if err != nil {
		return nil, err
	}
	return &KeyedCipher{alphabet: a, variant: variant, cipher: c}, nil
}

// Alphabet returns the alphabet the cipher is bound to.
func (k *KeyedCipher) Alphabet() *Alphabet { return k.alphabet }

// Variant returns the cipher variant.
func (k *KeyedCipher) Variant() Variant { return k.variant }

// Encrypt enciphers plaintext.
func (k *KeyedCipher) Encrypt(plaintext string) (string, error) {
	digits, err := k.alphabet.indices("plaintext", Normalize(plaintext))
	if err != nil {
		return "", err
	}
	out, err := k.cipher.Encrypt(digits)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt: %w", err)
	}
	return k.alphabet.Text(out), nil
}

// Decrypt deciphers ciphertext.
func (k *KeyedCipher) Decrypt(ciphertext string) (string, error) {
	digits, err := k.alphabet.indices("ciphertext", Normalize(ciphertext))
	if err != nil {
		return "", err
	}
	out, err := k.cipher.Decrypt(digits)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return k.alphabet.Text(out), nil
}

// Verify that KeyedCipher implements Cipher
var _ Cipher = (*KeyedCipher)(nil)
