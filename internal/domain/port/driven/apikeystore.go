package driven

import (
	"context"
	"time"

	"github.com/softspoken/nvcpractice/internal/domain/model"
)

// APIKeyStore defines the driven port for API key persistence. The store
// only ever sees digests; plaintext secrets live and die in the application
// layer.
type APIKeyStore interface {
	// Insert persists a new key record and returns its assigned id.
	Insert(ctx context.Context, key model.APIKey) (int64, error)

	// FindActiveByDigest returns the key whose digest matches AND whose
	// status is active, as a single conditioned read. Returns nil, nil
	// when no such key exists -- a digest match on a revoked key is not
	// reported any differently from no match at all.
	FindActiveByDigest(ctx context.Context, digest string) (*model.APIKey, error)

	// TouchLastUsed records a successful validation at time t.
	TouchLastUsed(ctx context.Context, id int64, t time.Time) error

	// Revoke flips an active key to revoked. Returns false without error
	// when the key is already revoked or does not exist.
	Revoke(ctx context.Context, id int64) (bool, error)

	// ListAll returns every key record ordered by id.
	ListAll(ctx context.Context) ([]model.APIKey, error)
}
