package credential

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	keySize = 32 // AES-256

	// hkdfInfo separates credential keys from any other use of the same secret.
	hkdfInfo = "limsclient-credential-v1"
)

// EncryptedStore seals the token before handing it to the wrapped Store.
// The AES-256-GCM key is derived with HKDF-SHA256 from the secret, salted
// with the slot key, so the same secret yields distinct keys per slot.
type EncryptedStore struct {
	next Store
	aead cipher.AEAD
}

// NewEncryptedStore wraps next. secret must be non-empty; slotKey is the salt.
func NewEncryptedStore(next Store, secret []byte, slotKey string) (*EncryptedStore, error) {
	if next == nil {
		return nil, errors.New("credential: wrapped store is required")
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty encryption secret", ErrInvalidKey)
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, []byte(slotKey), []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("deriving credential key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating credential cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating credential cipher: %w", err)
	}

	return &EncryptedStore{next: next, aead: aead}, nil
}

func (s *EncryptedStore) Load(ctx context.Context) (string, error) {
	sealed, err := s.next.Load(ctx)
	if err != nil {
		return "", err
	}

	raw, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Join(ErrCorrupted, err)
	}
	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize+s.aead.Overhead() {
		return "", fmt.Errorf("%w: ciphertext too short", ErrCorrupted)
	}

	plain, err := s.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", errors.Join(ErrCorrupted, err)
	}
	return string(plain), nil
}

func (s *EncryptedStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(token), nil)
	return s.next.Save(ctx, base64.RawStdEncoding.EncodeToString(sealed))
}

func (s *EncryptedStore) Delete(ctx context.Context) error {
	return s.next.Delete(ctx)
}
