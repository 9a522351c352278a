// Command vigenere encrypts and decrypts text with the Vigenère or Autokey
// Vigenère cipher.
//
//	vigenere [alphabet [cipher [mode]]] [--key KEY] [--text TEXT] [--no-input]
//
// Values not given as arguments, flags, VIGENERE_* environment variables, a
// .env file or the config file are asked for interactively.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/vdparikh/vigenere"
	"github.com/vdparikh/vigenere/internal/config"
	"github.com/vdparikh/vigenere/internal/prompt"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("vigenere: ")

	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("%v", err)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := config.NewFlagSet("vigenere")
	fs.SetOutput(stdout)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := config.Load(fs)
	if err != nil {
		return err
	}
	if err := prompt.Ask(sess, stdin, stdout); err != nil {
		return err
	}

	engine := &vigenere.Engine{}
	engine.SetAlphabet(sess.Alphabet)
	autokey := sess.Variant == vigenere.Autokey

	switch sess.Mode {
	case config.ModeEncrypt:
		ciphertext, err := engine.Encrypt(sess.Key, sess.Text, autokey)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, "ciphertext:", ciphertext)
	case config.ModeDecrypt:
		plaintext, err := engine.Decrypt(sess.Key, sess.Text, autokey)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Plaintext:", plaintext)
	default:
		return fmt.Errorf("no mode selected")
	}
	return nil
}
