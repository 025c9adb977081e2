package model

import "time"

// KeyStatus is the lifecycle state of an API key. The only transition is
// active -> revoked; revoked is terminal and there is no reactivation path.
type KeyStatus string

const (
	KeyStatusActive  KeyStatus = "active"
	KeyStatusRevoked KeyStatus = "revoked"
)

// APIKey is the server-side record behind an issued access secret. Only the
// SHA-256 digest of the secret is ever stored; the plaintext is shown once at
// issuance and is not recoverable from this record.
type APIKey struct {
	ID       int64
	Label    string
	KeyHash  string // hex SHA-256 digest, never exposed outside the store
	Status   KeyStatus
	IssuedAt time.Time

	// LastUsedAt is touched on every successful validation and nil until
	// the key has been used.
	LastUsedAt *time.Time
}
