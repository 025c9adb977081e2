package driven

import (
	"context"

	"github.com/softspoken/nvcpractice/internal/domain/model"
)

// ExerciseStore defines the driven port for exercise persistence. Inputs are
// assumed pre-validated by the caller; the store performs equality matching
// only, no semantic validation.
type ExerciseStore interface {
	// List returns exercises matching every set field of the filter,
	// in storage order. An empty filter returns everything.
	List(ctx context.Context, filter model.ExerciseFilter) ([]model.Exercise, error)

	// GetByID retrieves an exercise by exact id. Returns nil, nil if no
	// exercise with that id exists.
	GetByID(ctx context.Context, id int64) (*model.Exercise, error)

	// InsertBatch inserts exercises in a single transaction. Used only by
	// the seed loader; exercises are immutable once inserted.
	InsertBatch(ctx context.Context, exercises []model.Exercise) error
}
