package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/softspoken/nvcpractice/internal/domain/model"
	"github.com/softspoken/nvcpractice/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.APIKeyStore = (*APIKeyRepo)(nil)

// APIKeyRepo is the SQLite implementation of the APIKeyStore port interface.
// Rows hold the SHA-256 digest of each secret; plaintext never reaches this layer.
type APIKeyRepo struct {
	db *DB
}

// NewAPIKeyRepo creates a new APIKeyRepo backed by the given DB.
func NewAPIKeyRepo(db *DB) *APIKeyRepo {
	return &APIKeyRepo{db: db}
}

// Insert persists a new key record and returns its assigned id.
func (r *APIKeyRepo) Insert(ctx context.Context, key model.APIKey) (int64, error) {
	const query = `INSERT INTO api_keys (label, key_hash, status, issued_at) VALUES (?, ?, ?, ?)`

	issuedAt := key.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now().UTC()
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		key.Label, key.KeyHash, string(key.Status), formatTime(issuedAt))
	if err != nil {
		return 0, fmt.Errorf("insert api key %q: %w", key.Label, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	return id, nil
}

// FindActiveByDigest returns the key matching the digest with active status.
// The status check is part of the same query as the digest match, so a
// concurrent revoke can never be observed as stale. Returns nil, nil when no
// active key matches.
func (r *APIKeyRepo) FindActiveByDigest(ctx context.Context, digest string) (*model.APIKey, error) {
	const query = `SELECT id, label, key_hash, status, issued_at, last_used_at
		FROM api_keys WHERE key_hash = ? AND status = ?`

	key, err := scanAPIKey(r.db.Reader.QueryRowContext(ctx, query, digest, string(model.KeyStatusActive)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find api key by digest: %w", err)
	}

	return key, nil
}

// TouchLastUsed records a successful validation at time t.
func (r *APIKeyRepo) TouchLastUsed(ctx context.Context, id int64, t time.Time) error {
	const query = `UPDATE api_keys SET last_used_at = ? WHERE id = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, formatTime(t), id); err != nil {
		return fmt.Errorf("touch api key %d: %w", id, err)
	}

	return nil
}

// Revoke flips an active key to revoked. The status condition is inside the
// UPDATE, making the transition one-way and the call idempotent: revoking an
// already-revoked or missing id affects zero rows and returns false.
func (r *APIKeyRepo) Revoke(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE api_keys SET status = ? WHERE id = ? AND status = ?`

	result, err := r.db.Writer.ExecContext(ctx, query,
		string(model.KeyStatusRevoked), id, string(model.KeyStatusActive))
	if err != nil {
		return false, fmt.Errorf("revoke api key %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check rows affected: %w", err)
	}

	return rows == 1, nil
}

// ListAll returns every key record ordered by id.
func (r *APIKeyRepo) ListAll(ctx context.Context) ([]model.APIKey, error) {
	const query = `SELECT id, label, key_hash, status, issued_at, last_used_at FROM api_keys ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, *key)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}

	return keys, nil
}

func scanAPIKey(s scanner) (*model.APIKey, error) {
	var key model.APIKey
	var status, issuedAt string
	var lastUsedAt sql.NullString

	err := s.Scan(&key.ID, &key.Label, &key.KeyHash, &status, &issuedAt, &lastUsedAt)
	if err != nil {
		return nil, err
	}

	key.Status = model.KeyStatus(status)

	key.IssuedAt, err = parseTime(issuedAt)
	if err != nil {
		return nil, fmt.Errorf("parse issued_at: %w", err)
	}

	if lastUsedAt.Valid {
		t, err := parseTime(lastUsedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse last_used_at: %w", err)
		}
		key.LastUsedAt = &t
	}

	return &key, nil
}
