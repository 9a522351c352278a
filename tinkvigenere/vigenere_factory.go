// Package tinkvigenere provides Tink integration for the Vigenère ciphers.
// This file contains the factory function for creating cipher primitives from Tink keyset handles.
package tinkvigenere

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"

	"github.com/vdparikh/vigenere"
)

// New creates a cipher primitive from the primary key of a Tink keyset handle.
// The key manager must be registered first; see Register.
//
// Example:
//
//	if err := tinkvigenere.Register(); err != nil {
//	    return err
//	}
//	handle, err := keyset.NewHandle(tinkvigenere.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	primitive, err := tinkvigenere.New(handle)
//	if err != nil {
//	    return err
//	}
//	ciphertext, err := primitive.Encrypt("HYVÄÄHUOMENTA")
func New(handle *keyset.Handle) (vigenere.Cipher, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}

	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	c, ok := primary.Primitive.(vigenere.Cipher)
	if !ok {
		return nil, fmt.Errorf("primary key %d is not a Vigenère key (primitive %T)", primary.KeyID, primary.Primitive)
	}
	return c, nil
}

// KeyInfo describes the primary key of a cleartext keyset.
type KeyInfo struct {
	KeyID    uint32
	Alphabet *vigenere.Alphabet
	Variant  vigenere.Variant
	Key      string
}

// PrimaryKey reads the primary key material of a cleartext keyset. It is
// meant for tests and tooling; the key letters are the secret.
func PrimaryKey(handle *keyset.Handle) (*KeyInfo, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	ks := insecurecleartextkeyset.KeysetMaterial(handle)
	for _, k := range ks.Key {
		if k.KeyId != ks.PrimaryKeyId {
			continue
		}
		keyData := k.KeyData
		if keyData == nil || keyData.TypeUrl != VigenereKeyTypeURL {
			return nil, fmt.Errorf("primary key %d is not a Vigenère key", k.KeyId)
		}
		if keyData.KeyMaterialType != tink_go_proto.KeyData_SYMMETRIC {
			return nil, fmt.Errorf("unsupported key material type %s", keyData.KeyMaterialType)
		}
		parsed, err := unmarshalKey(keyData.Value)
		if err != nil {
			return nil, err
		}
		return &KeyInfo{
			KeyID:    k.KeyId,
			Alphabet: parsed.alphabet,
			Variant:  parsed.variant,
			Key:      parsed.letters,
		}, nil
	}
	return nil, fmt.Errorf("primary key %d not found in keyset", ks.PrimaryKeyId)
}

// NewKeysetHandleFromKey creates a keyset handle from known key letters,
// for example a key agreed on out of band.
//
// Example:
//
//	handle, err := tinkvigenere.NewKeysetHandleFromKey(vigenere.English, "LEMON", vigenere.Classic)
//	if err != nil {
//		log.Fatal(err)
//	}
//	primitive, err := tinkvigenere.New(handle)
//
// Note: This creates an unencrypted keyset. In production, consider encrypting
// the keyset before storing it using keyset.Write() with an AEAD.
func NewKeysetHandleFromKey(a *vigenere.Alphabet, letters string, variant vigenere.Variant) (*keyset.Handle, error) {
	// Validate the key against the alphabet before storing it.
	if _, err := vigenere.NewKeyedCipher(a, letters, variant); err != nil {
		return nil, err
	}

	keyIDBytes := make([]byte, 4)
	if _, err := rand.Read(keyIDBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	keyID := binary.BigEndian.Uint32(keyIDBytes)

	key, err := newKeyStruct(a, vigenere.Normalize(letters), variant)
	if err != nil {
		return nil, err
	}
	value, err := marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize key: %w", err)
	}

	keysetKey := &tink_go_proto.Keyset_Key{
		KeyData: &tink_go_proto.KeyData{
			TypeUrl:         VigenereKeyTypeURL,
			Value:           value,
			KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
		},
		KeyId:            keyID,
		Status:           tink_go_proto.KeyStatusType_ENABLED,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}

	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: keyID,
		Key:          []*tink_go_proto.Keyset_Key{keysetKey},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}
