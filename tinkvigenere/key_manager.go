// Package tinkvigenere provides Tink integration for the Vigenère ciphers.
// This file contains the KeyManager implementation that registers the ciphers with Tink's registry.
package tinkvigenere

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/proto/tink_go_proto"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vdparikh/vigenere"
)

const (
	// VigenereKeyTypeURL is the type URL for Vigenère keys in Tink's registry.
	VigenereKeyTypeURL = "type.googleapis.com/vdparikh.vigenere.VigenereKey"

	keyVersion = 0

	// DefaultKeyLength is the number of letters in keys generated by KeyTemplate.
	DefaultKeyLength = 16

	// MaxKeyLength bounds generated keys.
	MaxKeyLength = 4096
)

// Field names of the key and key format messages.
const (
	fieldVersion   = "version"
	fieldAlphabet  = "alphabet"
	fieldVariant   = "variant"
	fieldKey       = "key"
	fieldKeyLength = "key_length"
)

// KeyManager implements registry.KeyManager for Vigenère keys.
//
// Keys are serialized as a google.protobuf.Struct holding the alphabet name,
// the variant name and the key letters. Key formats (the value of a key
// template) hold the alphabet name, the variant name and the key length.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new Vigenère key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: VigenereKeyTypeURL,
	}
}

// Primitive creates a vigenere.Cipher from the given serialized key.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	if len(serializedKey) == 0 {
		return nil, fmt.Errorf("empty serialized key")
	}
	k, err := unmarshalKey(serializedKey)
	if err != nil {
		return nil, err
	}
	c, err := vigenere.NewKeyedCipher(k.alphabet, k.letters, k.variant)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return c, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey generates a new key according to the given serialized key format.
// The returned message is a *structpb.Struct.
func (km *KeyManager) NewKey(serializedKeyFormat []byte) (proto.Message, error) {
	f, err := unmarshalKeyFormat(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	letters, err := randomKey(f.alphabet, f.length)
	if err != nil {
		return nil, err
	}
	return newKeyStruct(f.alphabet, letters, f.variant)
}

// NewKeyData creates a new KeyData from the given serialized key format.
func (km *KeyManager) NewKeyData(serializedKeyFormat []byte) (*tink_go_proto.KeyData, error) {
	key, err := km.NewKey(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	value, err := marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key: %w", err)
	}
	return &tink_go_proto.KeyData{
		TypeUrl:         km.typeURL,
		Value:           value,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}, nil
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate creates a key template for 16 letter Autokey keys over the
// Finnish alphabet:
//
//	handle, err := keyset.NewHandle(tinkvigenere.KeyTemplate())
//
// Use ClassicKeyTemplate or AutokeyKeyTemplate for other parameters.
func KeyTemplate() *tink_go_proto.KeyTemplate {
	t, err := newKeyTemplate(vigenere.Finnish, DefaultKeyLength, vigenere.Autokey)
	if err != nil {
		// The default parameters are always valid.
		panic(err)
	}
	return t
}

// ClassicKeyTemplate creates a template for repeating-key Vigenère keys of
// length letters over alphabet a.
func ClassicKeyTemplate(a *vigenere.Alphabet, length int) (*tink_go_proto.KeyTemplate, error) {
	return newKeyTemplate(a, length, vigenere.Classic)
}

// AutokeyKeyTemplate creates a template for Autokey keys of length letters
// over alphabet a.
func AutokeyKeyTemplate(a *vigenere.Alphabet, length int) (*tink_go_proto.KeyTemplate, error) {
	return newKeyTemplate(a, length, vigenere.Autokey)
}

func newKeyTemplate(a *vigenere.Alphabet, length int, variant vigenere.Variant) (*tink_go_proto.KeyTemplate, error) {
	if a == nil {
		return nil, fmt.Errorf("alphabet cannot be nil")
	}
	if err := checkKeyLength(length); err != nil {
		return nil, err
	}
	format, err := structpb.NewStruct(map[string]interface{}{
		fieldAlphabet:  a.Name(),
		fieldVariant:   variant.String(),
		fieldKeyLength: length,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build key format: %w", err)
	}
	value, err := marshal(format)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key format: %w", err)
	}
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          VigenereKeyTypeURL,
		Value:            value,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}, nil
}

// parsedKey is the parsed form of a serialized key.
type parsedKey struct {
	alphabet *vigenere.Alphabet
	variant  vigenere.Variant
	letters  string
}

// keyFormat is the parsed form of a serialized key format.
type keyFormat struct {
	alphabet *vigenere.Alphabet
	variant  vigenere.Variant
	length   int
}

func newKeyStruct(a *vigenere.Alphabet, letters string, variant vigenere.Variant) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(map[string]interface{}{
		fieldVersion:  keyVersion,
		fieldAlphabet: a.Name(),
		fieldVariant:  variant.String(),
		fieldKey:      letters,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}
	return s, nil
}

func unmarshalKey(serializedKey []byte) (*parsedKey, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(serializedKey, s); err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	fields := s.GetFields()

	if v := fields[fieldVersion].GetNumberValue(); v != keyVersion {
		return nil, fmt.Errorf("unsupported key version %v", v)
	}
	a, err := vigenere.LookupAlphabet(fields[fieldAlphabet].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	variant, err := vigenere.ParseVariant(fields[fieldVariant].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	return &parsedKey{alphabet: a, variant: variant, letters: fields[fieldKey].GetStringValue()}, nil
}

// unmarshalKeyFormat parses a key format. An empty format selects the
// parameters of KeyTemplate.
func unmarshalKeyFormat(serializedKeyFormat []byte) (*keyFormat, error) {
	if len(serializedKeyFormat) == 0 {
		return &keyFormat{alphabet: vigenere.Finnish, variant: vigenere.Autokey, length: DefaultKeyLength}, nil
	}

	s := &structpb.Struct{}
	if err := proto.Unmarshal(serializedKeyFormat, s); err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	fields := s.GetFields()

	a, err := vigenere.LookupAlphabet(fields[fieldAlphabet].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	variant, err := vigenere.ParseVariant(fields[fieldVariant].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	length := int(fields[fieldKeyLength].GetNumberValue())
	if err := checkKeyLength(length); err != nil {
		return nil, fmt.Errorf("invalid key format: %w", err)
	}
	return &keyFormat{alphabet: a, variant: variant, length: length}, nil
}

func checkKeyLength(length int) error {
	if length < 1 || length > MaxKeyLength {
		return fmt.Errorf("invalid key length: %d letters (must be 1 to %d)", length, MaxKeyLength)
	}
	return nil
}

// randomKey draws length letters uniformly from a.
func randomKey(a *vigenere.Alphabet, length int) (string, error) {
	size := big.NewInt(int64(a.Len()))
	letters := make([]rune, length)
	for i := range letters {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate random key: %w", err)
		}
		letters[i] = a.Letter(int(n.Int64()))
	}
	return string(letters), nil
}

func marshal(m proto.Message) ([]byte, error) {
	return proto.MarshalOptions{Deterministic: true}.Marshal(m)
}
