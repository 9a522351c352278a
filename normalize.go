package vigenere

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares text for the cipher: composed Unicode form (so that
// "A" followed by a combining ring becomes "Å") and full uppercase.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Upper(language.Und).String(norm.NFC.String(s))
}
