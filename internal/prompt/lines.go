package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vdparikh/vigenere/internal/config"
)

// Lines asks for each missing value of s on its own line, repeating a
// question until the answer is valid.
func Lines(s *config.Session, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for _, st := range pending(s) {
		for {
			fmt.Fprint(w, st.label(s))
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return stepError(st, err)
				}
				return stepError(st, io.ErrUnexpectedEOF)
			}
			if err := st.apply(s, strings.TrimRight(scanner.Text(), "\r")); err != nil {
				fmt.Fprintln(w, InvalidInput)
				continue
			}
			break
		}
	}
	return nil
}
