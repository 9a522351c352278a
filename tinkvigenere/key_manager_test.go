package tinkvigenere

import (
	"errors"
	"testing"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vdparikh/vigenere"
)

// TestKeyManagerDoesSupport tests KeyManager.DoesSupport()
func TestKeyManagerDoesSupport(t *testing.T) {
	keyManager := NewKeyManager()

	if !keyManager.DoesSupport(VigenereKeyTypeURL) {
		t.Errorf("KeyManager should support %s", VigenereKeyTypeURL)
	}

	if keyManager.DoesSupport("invalid-type-url") {
		t.Error("KeyManager should not support invalid type URL")
	}
}

// TestKeyManagerTypeURL tests KeyManager.TypeURL()
func TestKeyManagerTypeURL(t *testing.T) {
	keyManager := NewKeyManager()

	if keyManager.TypeURL() != VigenereKeyTypeURL {
		t.Errorf("Expected TypeURL %s, got %s", VigenereKeyTypeURL, keyManager.TypeURL())
	}
}

// TestKeyManagerPrimitive tests that KeyManager.Primitive() returns a working cipher
func TestKeyManagerPrimitive(t *testing.T) {
	keyManager := NewKeyManager()

	key, err := newKeyStruct(vigenere.English, "KEY", vigenere.Classic)
	if err != nil {
		t.Fatalf("Failed to build key: %v", err)
	}
	serialized, err := proto.Marshal(key)
	if err != nil {
		t.Fatalf("Failed to serialize key: %v", err)
	}

	primitive, err := keyManager.Primitive(serialized)
	if err != nil {
		t.Fatalf("KeyManager.Primitive() failed: %v", err)
	}

	c, ok := primitive.(vigenere.Cipher)
	if !ok {
		t.Fatalf("Primitive is %T, not a vigenere.Cipher", primitive)
	}
	ciphertext, err := c.Encrypt("HELLO")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if ciphertext != "RIJVS" {
		t.Errorf("expected RIJVS, got %s", ciphertext)
	}
}

func TestKeyManagerPrimitive_InvalidKeys(t *testing.T) {
	keyManager := NewKeyManager()

	build := func(fields map[string]interface{}) []byte {
		s, err := structpb.NewStruct(fields)
		if err != nil {
			t.Fatalf("Failed to build struct: %v", err)
		}
		b, err := proto.Marshal(s)
		if err != nil {
			t.Fatalf("Failed to serialize: %v", err)
		}
		return b
	}

	testCases := []struct {
		name   string
		key    []byte
		target error
	}{
		{"Empty", nil, nil},
		{"Garbage", []byte{0xff, 0xff, 0xff}, nil},
		{"UnknownVersion", build(map[string]interface{}{"version": 7, "alphabet": "english", "variant": "vigenere", "key": "KEY"}), nil},
		{"UnknownAlphabet", build(map[string]interface{}{"alphabet": "swedish", "variant": "vigenere", "key": "KEY"}), vigenere.ErrUnsupportedAlphabet},
		{"UnknownVariant", build(map[string]interface{}{"alphabet": "english", "variant": "beaufort", "key": "KEY"}), nil},
		{"EmptyLetters", build(map[string]interface{}{"alphabet": "english", "variant": "autokey", "key": ""}), vigenere.ErrInvalidKey},
		{"IllegalLetter", build(map[string]interface{}{"alphabet": "english", "variant": "autokey", "key": "KÖY"}), vigenere.ErrIllegalCharacter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := keyManager.Primitive(tc.key)
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestKeyManagerNewKeyData(t *testing.T) {
	keyManager := NewKeyManager()

	template, err := ClassicKeyTemplate(vigenere.English, 12)
	if err != nil {
		t.Fatalf("Failed to create template: %v", err)
	}

	keyData, err := keyManager.NewKeyData(template.Value)
	if err != nil {
		t.Fatalf("NewKeyData failed: %v", err)
	}
	if keyData.TypeUrl != VigenereKeyTypeURL {
		t.Errorf("unexpected type URL %s", keyData.TypeUrl)
	}
	if keyData.KeyMaterialType != tink_go_proto.KeyData_SYMMETRIC {
		t.Errorf("unexpected key material type %s", keyData.KeyMaterialType)
	}

	parsed, err := unmarshalKey(keyData.Value)
	if err != nil {
		t.Fatalf("Failed to parse generated key: %v", err)
	}
	if parsed.alphabet != vigenere.English || parsed.variant != vigenere.Classic {
		t.Errorf("unexpected key parameters %s/%s", parsed.alphabet.Name(), parsed.variant)
	}
	if n := len([]rune(parsed.letters)); n != 12 {
		t.Errorf("expected 12 letters, got %d", n)
	}
	if err := vigenere.English.Validate(parsed.letters); err != nil {
		t.Errorf("generated key has illegal letters: %v", err)
	}

	// Two keys from the same template should differ (26^12 possibilities).
	other, err := keyManager.NewKeyData(template.Value)
	if err != nil {
		t.Fatalf("NewKeyData failed: %v", err)
	}
	if proto.Equal(keyData, other) {
		t.Error("two generated keys are identical")
	}
}

func TestKeyManagerNewKey_DefaultFormat(t *testing.T) {
	keyManager := NewKeyManager()

	msg, err := keyManager.NewKey(nil)
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	s, ok := msg.(*structpb.Struct)
	if !ok {
		t.Fatalf("NewKey returned %T", msg)
	}
	fields := s.GetFields()
	if fields["alphabet"].GetStringValue() != "finnish" || fields["variant"].GetStringValue() != "autokey" {
		t.Errorf("unexpected default key %v", s)
	}
	if n := len([]rune(fields["key"].GetStringValue())); n != DefaultKeyLength {
		t.Errorf("expected %d letters, got %d", DefaultKeyLength, n)
	}
}

func TestKeyTemplates_Invalid(t *testing.T) {
	if _, err := ClassicKeyTemplate(vigenere.English, 0); err == nil {
		t.Error("expected error for zero length")
	}
	if _, err := AutokeyKeyTemplate(vigenere.Finnish, MaxKeyLength+1); err == nil {
		t.Error("expected error for oversized key")
	}
	if _, err := AutokeyKeyTemplate(nil, 5); err == nil {
		t.Error("expected error for nil alphabet")
	}

	keyManager := NewKeyManager()
	if _, err := keyManager.NewKeyData([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error for garbage key format")
	}
}

func TestRegister(t *testing.T) {
	for i := 0; i < 3; i++ {
		if err := Register(); err != nil {
			t.Fatalf("Register call %d failed: %v", i, err)
		}
	}
	km, err := registry.GetKeyManager(VigenereKeyTypeURL)
	if err != nil {
		t.Fatalf("KeyManager not registered: %v", err)
	}
	if km.TypeURL() != VigenereKeyTypeURL {
		t.Errorf("registered manager has type URL %s", km.TypeURL())
	}
}

func TestKeysetHandleFromTemplates(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("Failed to register KeyManager: %v", err)
	}

	templates := map[string]func() (*tink_go_proto.KeyTemplate, error){
		"Default": func() (*tink_go_proto.KeyTemplate, error) { return KeyTemplate(), nil },
		"ClassicEnglish": func() (*tink_go_proto.KeyTemplate, error) {
			return ClassicKeyTemplate(vigenere.English, 5)
		},
		"AutokeyFinnish": func() (*tink_go_proto.KeyTemplate, error) {
			return AutokeyKeyTemplate(vigenere.Finnish, 3)
		},
	}

	for name, newTemplate := range templates {
		t.Run(name, func(t *testing.T) {
			template, err := newTemplate()
			if err != nil {
				t.Fatalf("Failed to create template: %v", err)
			}
			handle, err := keyset.NewHandle(template)
			if err != nil {
				t.Fatalf("Failed to create keyset handle: %v", err)
			}
			primitive, err := New(handle)
			if err != nil {
				t.Fatalf("Failed to create primitive: %v", err)
			}

			plaintext := "SALAINENVIESTI"
			ciphertext, err := primitive.Encrypt(plaintext)
			if err != nil {
				t.Fatalf("Encrypt failed: %v", err)
			}
			decrypted, err := primitive.Decrypt(ciphertext)
			if err != nil {
				t.Fatalf("Decrypt failed: %v", err)
			}
			if decrypted != plaintext {
				t.Errorf("Round-trip failed: expected %s, got %s", plaintext, decrypted)
			}
		})
	}
}
