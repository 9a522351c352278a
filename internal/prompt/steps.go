// Package prompt asks the user for the session values that no config source
// provided.
package prompt

import (
	"errors"
	"fmt"

	"github.com/vdparikh/vigenere"
	"github.com/vdparikh/vigenere/internal/config"
)

// InvalidInput is shown when an answer is rejected.
const InvalidInput = "Invalid input!"

// ErrCancelled is returned when the user aborts the prompt.
var ErrCancelled = errors.New("prompt cancelled")

// step is one question. label is evaluated when the question is asked, since
// earlier answers can change it.
type step struct {
	key   string
	label func(s *config.Session) string
	apply func(s *config.Session, answer string) error
}

var allSteps = []step{
	{
		key:   config.KeyAlphabet,
		label: func(*config.Session) string { return "Alphabet: (Finnish/English) " },
		apply: func(s *config.Session, answer string) error {
			a, err := config.ParseAlphabet(answer)
			if err != nil {
				return err
			}
			s.Alphabet = a
			return nil
		},
	},
	{
		key:   config.KeyCipher,
		label: func(*config.Session) string { return "Cipher: (Autokey/Vigenere) " },
		apply: func(s *config.Session, answer string) error {
			variant, err := config.ParseCipher(answer)
			if err != nil {
				return err
			}
			s.Variant, s.HasVariant = variant, true
			return nil
		},
	},
	{
		key:   config.KeyMode,
		label: func(*config.Session) string { return "Mode: (Encrypt/Decrypt) " },
		apply: func(s *config.Session, answer string) error {
			mode, err := config.ParseMode(answer)
			if err != nil {
				return err
			}
			s.Mode = mode
			return nil
		},
	},
	{
		key: config.KeyText,
		label: func(s *config.Session) string {
			if s.Mode == config.ModeDecrypt {
				return "Input ciphertext: "
			}
			return "Input plaintext: "
		},
		apply: func(s *config.Session, answer string) error {
			if err := checkLetters(s, answer); err != nil {
				return err
			}
			s.Text, s.HasText = answer, true
			return nil
		},
	},
	{
		key:   config.KeyKey,
		label: func(*config.Session) string { return "Input key: " },
		apply: func(s *config.Session, answer string) error {
			if vigenere.Normalize(answer) == "" {
				return &vigenere.InvalidKeyError{Reason: "key must not be empty"}
			}
			if err := checkLetters(s, answer); err != nil {
				return err
			}
			s.Key = answer
			return nil
		},
	},
}

// checkLetters rejects answers with letters outside the session alphabet.
func checkLetters(s *config.Session, answer string) error {
	if s.Alphabet == nil {
		return nil
	}
	return s.Alphabet.Validate(vigenere.Normalize(answer))
}

// pending returns the steps for the values s is missing, in order.
func pending(s *config.Session) []step {
	missing := make(map[string]bool)
	for _, key := range s.Missing() {
		missing[key] = true
	}
	var steps []step
	for _, st := range allSteps {
		if missing[st.key] {
			steps = append(steps, st)
		}
	}
	return steps
}

func stepError(st step, err error) error {
	return fmt.Errorf("%s: %w", st.key, err)
}
