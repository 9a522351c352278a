package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vdparikh/vigenere"
)

// Mode selects encryption or decryption.
type Mode int

const (
	// ModeUnset means no mode has been chosen yet.
	ModeUnset Mode = iota
	// ModeEncrypt turns plaintext into ciphertext.
	ModeEncrypt
	// ModeDecrypt turns ciphertext into plaintext.
	ModeDecrypt
)

func (m Mode) String() string {
	switch m {
	case ModeEncrypt:
		return "encrypt"
	case ModeDecrypt:
		return "decrypt"
	default:
		return "unset"
	}
}

// Keys used in the config file, in env vars (upper-cased, VIGENERE_ prefix)
// and in .env files.
const (
	KeyAlphabet = "alphabet"
	KeyCipher   = "cipher"
	KeyMode     = "mode"
	KeyKey      = "key"
	KeyText     = "text"
	KeyNoInput  = "no_input"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "VIGENERE"

// positional lists the keys set by positional arguments, in order.
var positional = []string{KeyAlphabet, KeyCipher, KeyMode}

// Settings holds the raw session values before parsing.
type Settings struct {
	Alphabet string
	Cipher   string
	Mode     string
	Key      string
	Text     string
	NoInput  bool `mapstructure:"no_input"`
	// TextSet reports whether any source gave a text, even an empty one.
	TextSet bool `mapstructure:"-"`
}

// Session holds a parsed session. Zero values mean "not given" and are asked
// for interactively unless NoInput is set.
type Session struct {
	Alphabet *vigenere.Alphabet
	Variant  vigenere.Variant
	// HasVariant reports whether Variant was given; Classic is the zero Variant.
	HasVariant bool
	Mode       Mode
	Key        string
	Text       string
	// HasText reports whether Text was given; empty text is valid input.
	HasText bool
	NoInput bool
}

// Complete reports whether every value needed to run the cipher is present.
func (s *Session) Complete() bool {
	return s.Alphabet != nil && s.HasVariant && s.Mode != ModeUnset && s.Key != "" && s.HasText
}

// Missing lists the keys that still need a value, in prompt order.
func (s *Session) Missing() []string {
	var missing []string
	if s.Alphabet == nil {
		missing = append(missing, KeyAlphabet)
	}
	if !s.HasVariant {
		missing = append(missing, KeyCipher)
	}
	if s.Mode == ModeUnset {
		missing = append(missing, KeyMode)
	}
	if !s.HasText {
		missing = append(missing, KeyText)
	}
	if s.Key == "" {
		missing = append(missing, KeyKey)
	}
	return missing
}

// NewFlagSet defines the session flags.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP(KeyAlphabet, "a", "", "alphabet: finnish (f, fi) or english (e, en)")
	fs.StringP(KeyCipher, "c", "", "cipher: autokey (a) or vigenere (v)")
	fs.StringP(KeyMode, "m", "", "mode: encrypt (e, en) or decrypt (d, de)")
	fs.StringP(KeyKey, "k", "", "key letters")
	fs.StringP(KeyText, "t", "", "plaintext or ciphertext")
	fs.String("config", "", "config file (default $VIGENERE_CONFIG or ~/.config/vigenere/config.toml)")
	fs.Bool("no-input", false, "fail instead of prompting for missing values")
	return fs
}

// Load reads the session from, highest priority first: positional arguments
// (alphabet, cipher, mode), flags, VIGENERE_* env vars, a .env file in the
// working directory and the TOML config file. fs must already be parsed.
func Load(fs *pflag.FlagSet) (*Session, error) {
	settings, err := LoadSettings(fs, ".")
	if err != nil {
		return nil, err
	}
	return settings.Parse()
}

// LoadSettings is Load without parsing; dir is searched for the .env file.
func LoadSettings(fs *pflag.FlagSet, dir string) (Settings, error) {
	v := viper.New()

	v.SetConfigType("toml")

	cfgPath := os.Getenv(EnvPrefix + "_CONFIG")
	if f := fs.Lookup("config"); f != nil && f.Changed {
		cfgPath = f.Value.String()
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "vigenere"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	for _, key := range []string{KeyAlphabet, KeyCipher, KeyMode, KeyKey, KeyText} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return Settings{}, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	if err := v.BindPFlag(KeyNoInput, fs.Lookup("no-input")); err != nil {
		return Settings{}, fmt.Errorf("bind flag no-input: %w", err)
	}

	// read config file if present
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}

	dotenv, err := readDotEnv(filepath.Join(dir, ".env"))
	if err != nil {
		return Settings{}, err
	}
	if err := v.MergeConfigMap(dotenv); err != nil {
		return Settings{}, fmt.Errorf("merge .env: %w", err)
	}

	args := fs.Args()
	if len(args) > len(positional) {
		return Settings{}, fmt.Errorf("too many arguments: got %d, want at most %d (alphabet, cipher, mode)", len(args), len(positional))
	}
	for i, arg := range args {
		v.Set(positional[i], arg)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal config: %w", err)
	}
	// An explicit empty text ("--text ''") is still a text.
	s.TextSet = v.IsSet(KeyText)
	return s, nil
}

// readDotEnv reads VIGENERE_* entries of a .env file into config keys.
// A missing file yields no entries.
func readDotEnv(path string) (map[string]interface{}, error) {
	d := viper.New()
	d.SetConfigFile(path)
	d.SetConfigType("env")
	if err := d.ReadInConfig(); err != nil {
		if isNotFound(err) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	prefix := strings.ToLower(EnvPrefix) + "_"
	values := make(map[string]interface{})
	for _, k := range d.AllKeys() {
		name, ok := strings.CutPrefix(k, prefix)
		if !ok || name == "config" {
			continue
		}
		values[name] = d.Get(k)
	}
	return values, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
