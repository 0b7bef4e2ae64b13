package navigation

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/beka-birhanu/mazebot/board"
	"github.com/beka-birhanu/mazebot/robot"
	"github.com/beka-birhanu/mazebot/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var rotations = []robot.RotationMode{robot.RotationFixed, robot.RotationTurn}

// run drives a fresh attempt through b and checks the believed pose never
// drifted from the real one.
func run(t *testing.T, b *board.Board, rotation robot.RotationMode) (simulation.Result, *Attempt) {
	t.Helper()
	b.SetRotation(rotation)
	attempt := New(Config{Rotation: rotation, Logger: zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))}).NewAttempt()
	res := simulation.Run(b, attempt, simulation.Options{StepBudget: 10000})

	pose := attempt.Memory().Pose()
	actual := robot.Cell{X: b.Robot().X - b.Start().X, Y: b.Robot().Y - b.Start().Y}
	assert.Equal(t, actual, pose.Cell, "believed cell drifted")
	assert.Equal(t, b.Facing(), pose.Facing, "believed facing drifted")
	assert.Zero(t, res.Bumps, "navigator walked into a wall")
	return res, attempt
}

func TestCorridor(t *testing.T) {
	nav := New(Config{})
	mem := NewMemory()

	m, err := nav.Decide(mem, robot.Snapshot{Front: true})
	require.NoError(t, err)
	assert.Equal(t, robot.Forward, m)

	m, err = nav.Decide(mem, robot.Snapshot{Front: true})
	require.NoError(t, err)
	assert.Equal(t, robot.Forward, m)

	assert.Equal(t, robot.Cell{X: 0, Y: 2}, mem.Pose().Cell)
	assert.Equal(t, 2, mem.Steps())
	assert.Equal(t, StateExploring, mem.State())
}

func TestDeadEndBacktrack(t *testing.T) {
	t.Run("Turn", func(t *testing.T) {
		nav := New(Config{Rotation: robot.RotationTurn})
		mem := NewMemory()

		m, err := nav.Decide(mem, robot.Snapshot{Left: true, Right: true})
		require.NoError(t, err)
		assert.Equal(t, robot.Left, m)
		assert.Equal(t, Pose{Cell: robot.Cell{X: -1}, Facing: robot.West}, mem.Pose())

		// Dead end: only the way back is open.
		m, err = nav.Decide(mem, robot.Snapshot{Back: true})
		require.NoError(t, err)
		assert.Equal(t, robot.Backward, m)
		assert.Equal(t, StateBacktracking, mem.State())
		assert.Equal(t, EdgeDead, mem.Edge(robot.Cell{}, robot.West))
		assert.Equal(t, EdgeDead, mem.Edge(robot.Cell{X: -1}, robot.East))

		// Back on the start facing east: the dead end is now behind.
		assert.Equal(t, Pose{Cell: robot.Cell{}, Facing: robot.East}, mem.Pose())
		m, err = nav.Decide(mem, robot.Snapshot{Front: true, Back: true})
		require.NoError(t, err)
		assert.Equal(t, robot.Forward, m)
		assert.Equal(t, robot.Cell{X: 1}, mem.Pose().Cell)
	})

	t.Run("Fixed", func(t *testing.T) {
		nav := New(Config{Rotation: robot.RotationFixed})
		mem := NewMemory()

		m, err := nav.Decide(mem, robot.Snapshot{Left: true, Right: true})
		require.NoError(t, err)
		assert.Equal(t, robot.Left, m)

		// Facing is kept, so the way back is to the right.
		m, err = nav.Decide(mem, robot.Snapshot{Right: true})
		require.NoError(t, err)
		assert.Equal(t, robot.Right, m)

		m, err = nav.Decide(mem, robot.Snapshot{Left: true, Right: true})
		require.NoError(t, err)
		assert.Equal(t, robot.Right, m, "must not re-enter the dead end")
	})

	t.Run("NothingElseLeft", func(t *testing.T) {
		nav := New(Config{Rotation: robot.RotationTurn})
		mem := NewMemory()

		_, err := nav.Decide(mem, robot.Snapshot{Left: true})
		require.NoError(t, err)
		_, err = nav.Decide(mem, robot.Snapshot{Back: true})
		require.NoError(t, err)

		_, err = nav.Decide(mem, robot.Snapshot{Back: true})
		assert.ErrorIs(t, err, ErrExhausted)
	})
}

func TestAllBlocked(t *testing.T) {
	nav := New(Config{})
	mem := NewMemory()

	_, err := nav.Decide(mem, robot.Snapshot{})
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Contains(t, err.Error(), "(0,0)")
}

func TestFinished(t *testing.T) {
	attempt := New(Config{}).NewAttempt()
	_, err := attempt.Decide(robot.Snapshot{Front: true})
	require.NoError(t, err)

	attempt.Finish()
	assert.Equal(t, StateDone, attempt.Memory().State())
	_, err = attempt.Decide(robot.Snapshot{Front: true})
	assert.ErrorIs(t, err, ErrFinished)

	attempt.Reset()
	m, err := attempt.Decide(robot.Snapshot{Front: true})
	require.NoError(t, err)
	assert.Equal(t, robot.Forward, m)
}

func TestPriority(t *testing.T) {
	tests := []struct {
		snap robot.Snapshot
		want robot.Move
	}{
		{robot.Snapshot{Front: true, Left: true, Right: true, Back: true}, robot.Forward},
		{robot.Snapshot{Left: true, Right: true, Back: true}, robot.Left},
		{robot.Snapshot{Right: true, Back: true}, robot.Right},
		{robot.Snapshot{Back: true}, robot.Backward},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			m, err := New(Config{}).Decide(NewMemory(), tt.snap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestLiveReadingWins(t *testing.T) {
	nav := New(Config{})
	mem := NewMemory()

	_, err := nav.Decide(mem, robot.Snapshot{Front: true, Right: true})
	require.NoError(t, err)
	assert.Equal(t, EdgeOpenUnvisited, mem.Edge(robot.Cell{}, robot.East))

	// (0,1): the way back reads blocked, east is new.
	m, err := nav.Decide(mem, robot.Snapshot{Right: true})
	require.NoError(t, err)
	assert.Equal(t, robot.Right, m)
	assert.Equal(t, EdgeDead, mem.Edge(robot.Cell{Y: 1}, robot.South))

	// (1,1): south is new.
	m, err = nav.Decide(mem, robot.Snapshot{Back: true})
	require.NoError(t, err)
	assert.Equal(t, robot.Backward, m)

	// (1,0): the frame says go back north, but only west is open now.
	m, err = nav.Decide(mem, robot.Snapshot{Left: true})
	require.NoError(t, err)
	assert.Equal(t, robot.Left, m)
	assert.Equal(t, robot.Cell{}, mem.Pose().Cell)

	// The origin saw east open earlier; a blocked reading now kills it.
	_, err = nav.Decide(mem, robot.Snapshot{Front: true})
	require.NoError(t, err)
	assert.Equal(t, EdgeDead, mem.Edge(robot.Cell{}, robot.East))
}

func TestRing(t *testing.T) {
	boards := map[string]string{
		"TwoByTwo": "start 0\n0 end",
		"Adjacent": "start end\n0 0",
		"Pillar":   "start 0 0\n0 1 0\n0 0 end",
	}

	for name, text := range boards {
		for _, rotation := range rotations {
			t.Run(name+"/"+rotation.String(), func(t *testing.T) {
				b, err := board.ParseString(text)
				require.NoError(t, err)

				res, attempt := run(t, b, rotation)
				require.Equal(t, simulation.OutcomeReached, res.Outcome, res.Reason)
				assert.LessOrEqual(t, res.Steps, 2*b.ReachableEdges())
				assert.Equal(t, StateDone, attempt.Memory().State())
				assertNoEdgeRepeated(t, res)
			})
		}
	}

	t.Run("FourCellsWithinEightSteps", func(t *testing.T) {
		b, err := board.ParseString("start 0\n0 end")
		require.NoError(t, err)
		res, _ := run(t, b, robot.RotationFixed)
		assert.LessOrEqual(t, res.Steps, 8)
	})
}

// assertNoEdgeRepeated checks no passage was walked twice in the same direction.
func assertNoEdgeRepeated(t *testing.T, res simulation.Result) {
	t.Helper()
	seen := make(map[[2]robot.Cell]bool)
	for i := 1; i < len(res.Path); i++ {
		step := [2]robot.Cell{res.Path[i-1], res.Path[i]}
		assert.False(t, seen[step], "passage %v walked twice in the same direction", step)
		seen[step] = true
	}
}

func TestTermination(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		for _, rotation := range rotations {
			t.Run(fmt.Sprintf("seed%d/%s", seed, rotation), func(t *testing.T) {
				rng := rand.New(rand.NewSource(seed))
				b, err := board.Generate(4+rng.Intn(8), 4+rng.Intn(8), rng)
				require.NoError(t, err)
				b.Braid(rng.Intn(12), rng)

				res, _ := run(t, b, rotation)
				require.Equal(t, simulation.OutcomeReached, res.Outcome, res.Reason)
				assert.LessOrEqual(t, res.Steps, 2*b.ReachableEdges())
				assertNoEdgeRepeated(t, res)
			})
		}
	}
}

func TestTreeMazePathLength(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b, err := board.Generate(6, 6, rng)
		require.NoError(t, err)

		res, attempt := run(t, b, robot.RotationFixed)
		require.Equal(t, simulation.OutcomeReached, res.Outcome)

		// Passages on the way to the exit are walked once, every other explored
		// passage exactly twice.
		mem := attempt.Memory()
		explored := mem.VisitedCount() - 1
		assert.Equal(t, b.Distance(), mem.Depth())
		assert.Equal(t, 2*explored-b.Distance(), res.Steps)
	}
}

func TestUnsolvable(t *testing.T) {
	b, err := board.ParseString("start 0 0\n0 1 1\n0 1 end")
	require.NoError(t, err)

	for _, rotation := range rotations {
		t.Run(rotation.String(), func(t *testing.T) {
			res, _ := run(t, b, rotation)
			assert.Equal(t, simulation.OutcomeFailed, res.Outcome)
			assert.ErrorIs(t, res.Err, ErrExhausted)
			assert.LessOrEqual(t, res.Steps, 2*b.ReachableEdges())
		})
	}
}

func TestResetMatchesFresh(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	first, err := board.Generate(7, 5, rng)
	require.NoError(t, err)
	second, err := board.Generate(5, 7, rng)
	require.NoError(t, err)
	second.Braid(6, rng)

	nav := New(Config{})
	reused := nav.NewAttempt()
	simulation.Run(first, reused, simulation.Options{})
	again := simulation.Run(second, reused, simulation.Options{})

	fresh := simulation.Run(second, nav.NewAttempt(), simulation.Options{})
	assert.Equal(t, fresh.Moves, again.Moves)
	assert.Equal(t, fresh.Path, again.Path)
}

func TestDeterministic(t *testing.T) {
	nav := New(Config{Rotation: robot.RotationTurn})
	readings := []robot.Snapshot{
		{Front: true, Left: true, Right: true},
		{Back: true},
		{Left: true, Back: true, Front: true},
		{Back: true, Right: true},
	}

	decide := func() []robot.Move {
		mem := NewMemory()
		var moves []robot.Move
		for _, s := range readings {
			m, err := nav.Decide(mem, s)
			require.NoError(t, err)
			moves = append(moves, m)
		}
		return moves
	}
	assert.Equal(t, decide(), decide())
}

func TestWallFollower(t *testing.T) {
	t.Run("PerfectMaze", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		b, err := board.Generate(6, 6, rng)
		require.NoError(t, err)

		for _, rotation := range rotations {
			b.SetRotation(rotation)
			res := simulation.Run(b, NewWallFollower(rotation), simulation.Options{StepBudget: 10000})
			assert.Equal(t, simulation.OutcomeReached, res.Outcome)
			assert.Zero(t, res.Bumps)
		}
	})

	t.Run("CirclesAroundPillar", func(t *testing.T) {
		const island = "0 0 0 1 1\n0 1 start 0 end\n0 0 0 1 1"
		b, err := board.ParseString(island)
		require.NoError(t, err)

		res := simulation.Run(b, NewWallFollower(robot.RotationFixed), simulation.Options{StepBudget: 200})
		assert.Equal(t, simulation.OutcomeBudgetExhausted, res.Outcome)

		b, err = board.ParseString(island)
		require.NoError(t, err)
		tremaux, _ := run(t, b, robot.RotationFixed)
		assert.Equal(t, simulation.OutcomeReached, tremaux.Outcome)
	})

	t.Run("Blocked", func(t *testing.T) {
		_, err := NewWallFollower(robot.RotationFixed).Decide(robot.Snapshot{})
		assert.ErrorIs(t, err, ErrExhausted)
	})
}
