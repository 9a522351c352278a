package vigenere

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	finnishLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZÅÄÖ"
	englishLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	// Finnish is the 29 letter alphabet A-Z followed by Å, Ä and Ö.
	Finnish = mustAlphabet("finnish", finnishLetters)

	// English is the 26 letter alphabet A-Z.
	English = mustAlphabet("english", englishLetters)

	builtin = []*Alphabet{Finnish, English}
)

// Alphabet is an ordered set of distinct letters. The position of a letter is
// its numeric value and the number of letters is the modulus of the cipher.
// An Alphabet is immutable and safe for concurrent use.
type Alphabet struct {
	name    string
	letters []rune
	index   map[rune]uint16
}

// NewAlphabet builds an alphabet from the letters of s, in order.
// It fails if s is empty, not valid UTF-8 or repeats a letter.
func NewAlphabet(name, s string) (*Alphabet, error) {
	if s == "" {
		return nil, fmt.Errorf("alphabet %q has no letters", name)
	}
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("alphabet %q is not valid UTF-8", name)
	}

	letters := []rune(s)
	if len(letters) > math.MaxUint16+1 {
		return nil, fmt.Errorf("alphabet %q has %d letters (maximum %d)", name, len(letters), math.MaxUint16+1)
	}

	index := make(map[rune]uint16, len(letters))
	for i, r := range letters {
		if _, dup := index[r]; dup {
			return nil, fmt.Errorf("alphabet %q repeats letter %q", name, r)
		}
		index[r] = uint16(i)
	}

	return &Alphabet{name: name, letters: letters, index: index}, nil
}

func mustAlphabet(name, s string) *Alphabet {
	a, err := NewAlphabet(name, s)
	if err != nil {
		panic(err)
	}
	return a
}

// LookupAlphabet returns the built-in alphabet with the given name, ignoring case.
func LookupAlphabet(name string) (*Alphabet, error) {
	for _, a := range builtin {
		if strings.EqualFold(strings.TrimSpace(name), a.name) {
			return a, nil
		}
	}
	return nil, &UnsupportedAlphabetError{Name: name}
}

// AlphabetNames lists the names accepted by LookupAlphabet.
func AlphabetNames() []string {
	names := make([]string, len(builtin))
	for i, a := range builtin {
		names[i] = a.name
	}
	return names
}

// Name returns the alphabet's name.
func (a *Alphabet) Name() string { return a.name }

// Len returns the number of letters, which is the cipher modulus.
func (a *Alphabet) Len() int { return len(a.letters) }

// Letters returns the letters in order.
func (a *Alphabet) Letters() string { return string(a.letters) }

// Contains reports whether r is a letter of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// IndexOf returns the zero-based position of r. The lookup is case-sensitive.
func (a *Alphabet) IndexOf(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, &IllegalCharacterError{Char: r, Position: -1, Alphabet: a.name}
	}
	return int(i), nil
}

// Letter returns the letter at position i.
func (a *Alphabet) Letter(i int) rune {
	return a.letters[i]
}

// Validate reports the first rune of text that is not in the alphabet.
// text is expected to be normalized already; see Normalize.
func (a *Alphabet) Validate(text string) error {
	return a.validate("", text)
}

func (a *Alphabet) validate(input, text string) error {
	pos := 0
	for _, r := range text {
		if !a.Contains(r) {
			return &IllegalCharacterError{Input: input, Char: r, Position: pos, Alphabet: a.name}
		}
		pos++
	}
	return nil
}

// Indices converts text to letter positions.
func (a *Alphabet) Indices(text string) ([]uint16, error) {
	return a.indices("", text)
}

func (a *Alphabet) indices(input, text string) ([]uint16, error) {
	if err := a.validate(input, text); err != nil {
		return nil, err
	}
	result := make([]uint16, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		result = append(result, a.index[r])
	}
	return result, nil
}

// Text converts letter positions back to text. Positions must be < Len.
func (a *Alphabet) Text(indices []uint16) string {
	var b strings.Builder
	b.Grow(len(indices))
	for _, i := range indices {
		b.WriteRune(a.letters[i])
	}
	return b.String()
}
