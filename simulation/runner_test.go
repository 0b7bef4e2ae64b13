package simulation

import (
	"errors"
	"testing"

	"github.com/beka-birhanu/mazebot/board"
	"github.com/beka-birhanu/mazebot/robot"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// corridor is a 1x3 straight corridor with the robot facing into it.
const corridor = `
start
0
end
`

// scripted replays fixed moves and records what it was shown.
type scripted struct {
	moves    []robot.Move
	seen     []robot.Snapshot
	resets   int
	finished bool
}

func (s *scripted) Decide(snap robot.Snapshot) (robot.Move, error) {
	s.seen = append(s.seen, snap)
	m := s.moves[0]
	s.moves = s.moves[1:]
	return m, nil
}

func (s *scripted) Reset() { s.resets++ }

func (s *scripted) Finish() { s.finished = true }

func TestRunReachesEnd(t *testing.T) {
	b, err := board.ParseString(corridor)
	require.NoError(t, err)

	d := &scripted{moves: []robot.Move{robot.Forward, robot.Forward}}
	res := Run(b, d, Options{})

	assert.Equal(t, OutcomeReached, res.Outcome)
	assert.Equal(t, 2, res.Steps)
	assert.Zero(t, res.Bumps)
	assert.Equal(t, []robot.Move{robot.Forward, robot.Forward}, res.Moves)
	assert.Equal(t, []robot.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}, res.Path)
	assert.Equal(t, []robot.Snapshot{{Front: true}, {Front: true, Back: true}}, d.seen)
	assert.Equal(t, 1, d.resets)
	assert.True(t, d.finished)
	assert.NoError(t, res.Err)
	assert.NotEqual(t, uuid.Nil, res.ID)
}

func TestRunBudget(t *testing.T) {
	b, err := board.ParseString(corridor)
	require.NoError(t, err)

	bump := robot.DeciderFunc(func(robot.Snapshot) (robot.Move, error) {
		return robot.Left, nil
	})
	res := Run(b, bump, Options{StepBudget: 5})

	assert.Equal(t, OutcomeBudgetExhausted, res.Outcome)
	assert.Equal(t, 5, res.Steps)
	assert.Equal(t, 5, res.Bumps)
	assert.Len(t, res.Path, 6)
}

func TestRunFailures(t *testing.T) {
	b, err := board.ParseString(corridor)
	require.NoError(t, err)

	t.Run("DeciderError", func(t *testing.T) {
		boom := errors.New("boom")
		res := Run(b, robot.DeciderFunc(func(robot.Snapshot) (robot.Move, error) {
			return 0, boom
		}), Options{})

		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.ErrorIs(t, res.Err, boom)
		assert.Equal(t, "boom", res.Reason)
		assert.Zero(t, res.Steps)
	})

	t.Run("InvalidMove", func(t *testing.T) {
		res := Run(b, robot.DeciderFunc(func(robot.Snapshot) (robot.Move, error) {
			return robot.Move(9), nil
		}), Options{})

		assert.Equal(t, OutcomeFailed, res.Outcome)
		assert.ErrorIs(t, res.Err, ErrInvalidMove)
	})
}

func TestRunStartOnEnd(t *testing.T) {
	b, err := board.New(1, 1, robot.Cell{}, robot.Cell{})
	require.NoError(t, err)

	d := &scripted{}
	res := Run(b, d, Options{})

	assert.Equal(t, OutcomeReached, res.Outcome)
	assert.Zero(t, res.Steps)
	assert.Empty(t, d.seen)
}

func TestRunLogs(t *testing.T) {
	b, err := board.ParseString(corridor)
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	Run(b, &scripted{moves: []robot.Move{robot.Forward, robot.Forward}}, Options{Logger: zap.New(core)})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "run started", entries[0].Message)
	assert.Equal(t, "run finished", entries[1].Message)
	assert.Equal(t, "reached", entries[1].ContextMap()["outcome"])
}
