package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beka-birhanu/mazebot/board"
	dmn "github.com/beka-birhanu/mazebot/domain"
	"github.com/beka-birhanu/mazebot/metrics"
	"github.com/beka-birhanu/mazebot/navigation"
	"github.com/beka-birhanu/mazebot/robot"
	"github.com/beka-birhanu/mazebot/service/i"
	"github.com/beka-birhanu/mazebot/simulation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultMaxBoardSide   = 129
	defaultLeaderboardTop = 10
	maxHistory            = 100
)

var (
	ErrInvalidBoard    = errors.New("invalid board")
	ErrBoardTooLarge   = errors.New("board is too large")
	ErrUnknownEngine   = errors.New("unknown engine")
	ErrInvalidRotation = errors.New("invalid rotation mode")
	ErrInvalidBudget   = errors.New("step budget out of range")
	ErrMissingName     = errors.New("board name is required")
)

// SandboxOptions tunes a Sandbox. Zero values select defaults.
type SandboxOptions struct {
	Rotation      robot.RotationMode // Rotation used when a request names none.
	StepBudget    int                // StepBudget used when a request names none; also the upper bound.
	MaxBoardSide  int
	Logger        *zap.Logger
	SimulationLog *zap.Logger // SimulationLog receives engine and harness entries.
}

// Sandbox runs learner attempts, stores them and keeps the leaderboards.
type Sandbox struct {
	runs        i.RunRepo
	leaderboard i.Leaderboard
	opts        SandboxOptions
	logger      *zap.Logger
}

// NewSandbox creates a Sandbox backed by the given run repository and leaderboard.
func NewSandbox(runs i.RunRepo, leaderboard i.Leaderboard, opts SandboxOptions) *Sandbox {
	if opts.StepBudget <= 0 {
		opts.StepBudget = simulation.DefaultStepBudget
	}
	if opts.MaxBoardSide <= 0 {
		opts.MaxBoardSide = defaultMaxBoardSide
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SimulationLog == nil {
		opts.SimulationLog = zap.NewNop()
	}

	return &Sandbox{
		runs:        runs,
		leaderboard: leaderboard,
		opts:        opts,
		logger:      opts.Logger,
	}
}

// Run parses the submitted board, runs the requested engine on it and stores
// the result. Reached runs are offered to the board's leaderboard.
func (s *Sandbox) Run(ctx context.Context, req i.RunRequest) (*dmn.Run, error) {
	if strings.TrimSpace(req.BoardName) == "" {
		return nil, ErrMissingName
	}
	if req.Engine == "" {
		req.Engine = dmn.EngineTremaux
	}
	if !req.Engine.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, req.Engine)
	}

	rotation := s.opts.Rotation
	if req.Rotation != "" {
		r, err := robot.ParseRotationMode(req.Rotation)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRotation, err)
		}
		rotation = r
	}

	budget := req.StepBudget
	if budget == 0 {
		budget = s.opts.StepBudget
	}
	if budget < 0 || budget > s.opts.StepBudget {
		return nil, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidBudget, budget, s.opts.StepBudget)
	}

	b, err := board.ParseString(req.Board)
	if err != nil {
		metrics.RecordRejectedBoard()
		return nil, fmt.Errorf("%w: %w", ErrInvalidBoard, err)
	}
	if b.Width() > s.opts.MaxBoardSide || b.Height() > s.opts.MaxBoardSide {
		metrics.RecordRejectedBoard()
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrBoardTooLarge, b.Width(), b.Height(), s.opts.MaxBoardSide)
	}
	b.SetRotation(rotation)

	res := simulation.Run(b, s.decider(req.Engine, rotation), simulation.Options{
		StepBudget: budget,
		Logger:     s.opts.SimulationLog,
	})
	metrics.RecordRun(string(req.Engine), string(res.Outcome), res.Steps, res.Duration)

	run := &dmn.Run{
		ID:        res.ID,
		LearnerID: req.LearnerID,
		Learner:   req.Learner,
		Board:     req.BoardName,
		Engine:    req.Engine,
		Rotation:  rotation.String(),
		Outcome:   res.Outcome,
		Steps:     res.Steps,
		Bumps:     res.Bumps,
		Moves:     res.Moves,
		Reason:    res.Reason,
		Duration:  res.Duration,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Error("saving run failed", zap.String("run_id", run.ID.String()), zap.Error(err))
		return nil, err
	}

	if run.Reached() {
		improved, err := s.leaderboard.Record(ctx, run.Board, run.Learner, run.Steps)
		if err != nil {
			// The run is already stored.
			s.logger.Warn("recording standing failed",
				zap.String("board", run.Board),
				zap.String("learner", run.Learner),
				zap.Error(err),
			)
		} else if improved {
			s.logger.Info("new best",
				zap.String("board", run.Board),
				zap.String("learner", run.Learner),
				zap.Int("steps", run.Steps),
			)
		}
	}

	s.logger.Info("run stored",
		zap.String("run_id", run.ID.String()),
		zap.String("learner", run.Learner),
		zap.String("board", run.Board),
		zap.String("engine", string(run.Engine)),
		zap.String("outcome", string(run.Outcome)),
		zap.Int("steps", run.Steps),
	)
	return run, nil
}

func (s *Sandbox) decider(e dmn.Engine, rotation robot.RotationMode) robot.Decider {
	if e == dmn.EngineWallFollower {
		return navigation.NewWallFollower(rotation)
	}
	return navigation.New(navigation.Config{
		Rotation: rotation,
		Logger:   s.opts.SimulationLog,
	}).NewAttempt()
}

// ByID returns a stored run.
func (s *Sandbox) ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	return s.runs.ByID(ctx, id)
}

// History returns the learner's latest runs, newest first.
func (s *Sandbox) History(ctx context.Context, learnerID uuid.UUID, limit int64) ([]*dmn.Run, error) {
	if limit <= 0 || limit > maxHistory {
		limit = maxHistory
	}
	return s.runs.ByLearner(ctx, learnerID, limit)
}

// Leaderboard returns the best standings on a board.
func (s *Sandbox) Leaderboard(ctx context.Context, name string, limit int64) ([]dmn.Standing, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}
	if limit <= 0 {
		limit = defaultLeaderboardTop
	}
	return s.leaderboard.Top(ctx, name, limit)
}
