package prompt

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/vdparikh/vigenere/internal/config"
)

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Ask fills in the missing values of s. It runs the wizard when both streams
// are terminals and falls back to line prompts otherwise.
func Ask(s *config.Session, in io.Reader, out io.Writer) error {
	if s.Complete() {
		return nil
	}
	if IsTerminal(in) && IsTerminal(out) {
		return Wizard(s, in, out)
	}
	return Lines(s, in, out)
}
