package i

import (
	"context"

	dmn "github.com/beka-birhanu/mazebot/domain"
)

// Leaderboard keeps the fewest steps each learner needed on each board.
type Leaderboard interface {
	// Record stores steps for the learner if it beats their previous best.
	// It reports whether the standing improved.
	Record(ctx context.Context, board, learner string, steps int) (bool, error)

	// Top returns up to limit standings, fewest steps first.
	Top(ctx context.Context, board string, limit int64) ([]dmn.Standing, error)
}
