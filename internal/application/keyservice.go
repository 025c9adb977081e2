// Package application holds the domain logic composed from the driven ports:
// API key lifecycle and exercise projection.
package application

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/softspoken/nvcpractice/internal/domain/model"
	"github.com/softspoken/nvcpractice/internal/domain/port/driven"
)

// ErrEmptyLabel is returned by Issue when the label is empty or whitespace.
var ErrEmptyLabel = errors.New("label must not be empty")

// ErrKeyInvalid is returned by Validate for any unusable secret. A secret
// that matches nothing and a secret whose key was revoked are deliberately
// indistinguishable, so callers cannot probe for key existence.
var ErrKeyInvalid = errors.New("api key not found or revoked")

const (
	// Issued secrets are the prefix plus random alphanumerics, 36 chars total.
	secretPrefix = "nvc_"
	secretLength = 36

	secretAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// KeyService implements the API key lifecycle: issuance, validation with a
// last-used touch, one-way revocation, and listing. Secrets are hashed with
// unsalted SHA-256; the inputs are high-entropy random strings, not
// passwords, so a KDF is unnecessary.
type KeyService struct {
	keys driven.APIKeyStore
}

// NewKeyService creates a KeyService over the given store.
func NewKeyService(keys driven.APIKeyStore) *KeyService {
	return &KeyService{keys: keys}
}

// Issue generates a fresh secret, persists its digest under the given label,
// and returns the plaintext together with the new key's id. The plaintext is
// returned exactly once; no operation can recover it later.
func (s *KeyService) Issue(ctx context.Context, label string) (string, int64, error) {
	if strings.TrimSpace(label) == "" {
		return "", 0, ErrEmptyLabel
	}

	secret, err := generateSecret()
	if err != nil {
		return "", 0, fmt.Errorf("generate secret: %w", err)
	}

	id, err := s.keys.Insert(ctx, model.APIKey{
		Label:    label,
		KeyHash:  hashSecret(secret),
		Status:   model.KeyStatusActive,
		IssuedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", 0, fmt.Errorf("persist key: %w", err)
	}

	return secret, id, nil
}

// Validate hashes the presented secret and looks up a matching active key.
// On success the key's last-used timestamp is touched and the record is
// returned; on any non-match the caller gets ErrKeyInvalid.
func (s *KeyService) Validate(ctx context.Context, presented string) (*model.APIKey, error) {
	key, err := s.keys.FindActiveByDigest(ctx, hashSecret(presented))
	if err != nil {
		return nil, fmt.Errorf("find key: %w", err)
	}
	if key == nil {
		return nil, ErrKeyInvalid
	}

	// The authorization decision above is final; the touch happens after
	// and a lost update here is tolerable, but a storage error is not.
	now := time.Now().UTC()
	if err := s.keys.TouchLastUsed(ctx, key.ID, now); err != nil {
		return nil, fmt.Errorf("touch key %d: %w", key.ID, err)
	}
	key.LastUsedAt = &now

	return key, nil
}

// Revoke permanently deactivates a key. Returns false when the key is
// already revoked or unknown; there is no way back to active.
func (s *KeyService) Revoke(ctx context.Context, id int64) (bool, error) {
	ok, err := s.keys.Revoke(ctx, id)
	if err != nil {
		return false, fmt.Errorf("revoke key %d: %w", id, err)
	}
	return ok, nil
}

// List returns all key records, revoked ones included, ordered by id.
func (s *KeyService) List(ctx context.Context) ([]model.APIKey, error) {
	keys, err := s.keys.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// hashSecret computes the hex SHA-256 digest under which secrets are stored
// and compared. Equality is only ever tested digest-to-digest.
func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// generateSecret draws each character uniformly from the alphabet using
// crypto/rand, avoiding modulo bias.
func generateSecret() (string, error) {
	buf := make([]byte, 0, secretLength)
	buf = append(buf, secretPrefix...)

	max := big.NewInt(int64(len(secretAlphabet)))
	for len(buf) < secretLength {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf = append(buf, secretAlphabet[n.Int64()])
	}

	return string(buf), nil
}
