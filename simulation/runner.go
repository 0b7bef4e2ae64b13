// Package simulation drives a robot.Decider through a board until the robot
// reaches the end cell, the step budget runs out or the decider fails.
package simulation

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/mazebot/board"
	"github.com/beka-birhanu/mazebot/robot"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultStepBudget is used when Options.StepBudget is not positive.
const DefaultStepBudget = 2000

// ErrInvalidMove is reported when a decider returns a value outside the move set.
var ErrInvalidMove = errors.New("decider returned an invalid move")

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeReached         Outcome = "reached"
	OutcomeBudgetExhausted Outcome = "budget_exhausted"
	OutcomeFailed          Outcome = "failed"
)

// Options configures a run.
type Options struct {
	StepBudget int         // StepBudget caps the number of decisions.
	Logger     *zap.Logger // Logger defaults to a no-op logger.
}

// Result describes a finished run.
type Result struct {
	ID       uuid.UUID     `json:"id" yaml:"id"`
	Outcome  Outcome       `json:"outcome" yaml:"outcome"`
	Steps    int           `json:"steps" yaml:"steps"`
	Bumps    int           `json:"bumps" yaml:"bumps"` // Bumps counts moves into walls.
	Moves    []robot.Move  `json:"moves" yaml:"moves"`
	Path     []robot.Cell  `json:"path" yaml:"path"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Reason   string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Err      error         `json:"-" yaml:"-"`
}

// Run resets the board and the decider and steps until the run ends. The
// decider is called synchronously, once per step, and never after the robot
// reached the end cell.
func Run(b *board.Board, d robot.Decider, opts Options) Result {
	if opts.StepBudget <= 0 {
		opts.StepBudget = DefaultStepBudget
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	b.ResetRobot()
	d.Reset()

	res := Result{
		ID:   uuid.New(),
		Path: []robot.Cell{b.Robot()},
	}
	logger := opts.Logger.With(zap.String("run_id", res.ID.String()))
	logger.Info("run started",
		zap.Stringer("start", b.Start()),
		zap.Stringer("end", b.End()),
		zap.Stringer("rotation", b.Rotation()),
		zap.Int("step_budget", opts.StepBudget),
	)

	began := time.Now()
	for {
		if b.AtEnd() {
			if f, ok := d.(robot.Finisher); ok {
				f.Finish()
			}
			res.Outcome = OutcomeReached
			break
		}
		if res.Steps >= opts.StepBudget {
			res.Outcome = OutcomeBudgetExhausted
			break
		}

		snap := b.Sense()
		m, err := d.Decide(snap)
		if err == nil && !m.Valid() {
			err = fmt.Errorf("%w: %d", ErrInvalidMove, int(m))
		}
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Err = err
			res.Reason = err.Error()
			logger.Error("decider failed",
				zap.Int("step", res.Steps),
				zap.Stringer("cell", b.Robot()),
				zap.Stringer("snapshot", snap),
				zap.Error(err),
			)
			break
		}

		if !b.Apply(m) {
			res.Bumps++
		}
		res.Steps++
		res.Moves = append(res.Moves, m)
		res.Path = append(res.Path, b.Robot())
	}
	res.Duration = time.Since(began)

	logger.Info("run finished",
		zap.String("outcome", string(res.Outcome)),
		zap.Int("steps", res.Steps),
		zap.Int("bumps", res.Bumps),
		zap.Duration("duration", res.Duration),
	)
	return res
}
