package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazebot/domain"
	"github.com/google/uuid"
)

// RunRequest describes one attempt a learner asks the sandbox to run.
type RunRequest struct {
	LearnerID  uuid.UUID
	Learner    string
	BoardName  string
	Board      string // Board holds the board in its text format.
	Engine     dmn.Engine
	Rotation   string
	StepBudget int
}

// Sandbox runs attempts and answers questions about past ones.
type Sandbox interface {
	Run(ctx context.Context, req RunRequest) (*dmn.Run, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error)
	History(ctx context.Context, learnerID uuid.UUID, limit int64) ([]*dmn.Run, error)
	Leaderboard(ctx context.Context, board string, limit int64) ([]dmn.Standing, error)
}

// Authenticator issues sandbox session tokens.
type Authenticator interface {
	// StartSession returns a token identifying a new learner session.
	StartSession(name string) (uuid.UUID, string, error)
}
