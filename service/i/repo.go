package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazebot/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for run persistence operations.
type RunRepo interface {
	// Save inserts a finished run.
	Save(ctx context.Context, run *dmn.Run) error

	// ByID retrieves a run by its unique ID.
	// Returns domain.ErrRunNotFound if there is no such run.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)

	// ByLearner retrieves the most recent runs of a learner, newest first.
	ByLearner(ctx context.Context, learnerID uuid.UUID, limit int64) ([]*dmn.Run, error)
}
