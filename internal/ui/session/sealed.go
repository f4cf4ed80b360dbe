package session

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const sealedVersion = 1

// info string used to derive the storage key, changing it invalidates every sealed entry
var sealedKeyInfo = []byte("petly session storage v1")

// sealedEntry is the JSON envelope written to the underlying storage
type sealedEntry struct {
	Version    int    `json:"v"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// SealedStorage encrypts the session entry (XChaCha20-Poly1305) before handing it to the wrapped Storage.
// The bearer token is then never stored in clear text.
//
// The envelope is itself JSON so it can be stored in any backend, including the jsonb column used by PostgresStorage.
type SealedStorage struct {
	inner Storage
	aead  cipher.AEAD
}

// NewSealedStorage derives a 256 bit key from secret with HKDF-SHA256
func NewSealedStorage(inner Storage, secret string) (*SealedStorage, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, sealedKeyInfo), key); err != nil {
		return nil, fmt.Errorf("deriving session key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	return &SealedStorage{inner: inner, aead: aead}, nil
}

func (s *SealedStorage) Load(ctx context.Context) ([]byte, error) {
	raw, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	var entry sealedEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	if entry.Version != sealedVersion || len(entry.Nonce) != s.aead.NonceSize() {
		return nil, fmt.Errorf("%w: unsupported envelope", ErrCorruptEntry)
	}

	data, err := s.aead.Open(nil, entry.Nonce, entry.Ciphertext, []byte(StorageKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptEntry, err)
	}
	return data, nil
}

func (s *SealedStorage) Save(ctx context.Context, data []byte) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generating nonce: %w", err)
	}

	envelope, err := json.Marshal(sealedEntry{
		Version:    sealedVersion,
		Nonce:      nonce,
		Ciphertext: s.aead.Seal(nil, nonce, data, []byte(StorageKey)),
	})
	if err != nil {
		return fmt.Errorf("encoding sealed entry: %w", err)
	}
	return s.inner.Save(ctx, envelope)
}

func (s *SealedStorage) Remove(ctx context.Context) error {
	return s.inner.Remove(ctx)
}
