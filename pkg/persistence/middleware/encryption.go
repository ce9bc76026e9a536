package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/aretw0/japanizer/pkg/ports"
	"github.com/google/uuid"
)

// envelopePrefix marks an encrypted display name in the underlying store.
const envelopePrefix = "enc:"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.PreferenceStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts display names using AES-GCM.
// User ids and toggles stay readable so the store can still be inspected.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.PreferenceStore) ports.PreferenceStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

func (m *encryptionMiddleware) Save(ctx context.Context, pref domain.Preference) error {
	if pref.Name != "" {
		ciphertext, err := encrypt([]byte(pref.Name), m.config.ActiveKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt preference: %w", err)
		}
		pref.Name = envelopePrefix + base64.StdEncoding.EncodeToString(ciphertext)
	}
	return m.next.Save(ctx, pref)
}

func (m *encryptionMiddleware) Load(ctx context.Context, userID uuid.UUID) (domain.Preference, error) {
	pref, err := m.next.Load(ctx, userID)
	if err != nil || pref.Name == "" {
		return pref, err
	}

	encoded, ok := strings.CutPrefix(pref.Name, envelopePrefix)
	if !ok {
		// Fail secure: a plain name means the value was written without encryption.
		return domain.Preference{}, errors.New("preference name is missing encrypted envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return domain.Preference{}, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return domain.Preference{}, fmt.Errorf("failed to decrypt preference: %w", err)
	}

	pref.Name = string(plainText)
	return pref, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.next.Delete(ctx, userID)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	// Try active key first
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	// Try fallbacks in order
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
