package board

import (
	"bytes"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beka-birhanu/mazebot/robot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corridor = `
start 0 end
`

const square = `
START 0   1
0     1   0
0     0   END
`

func TestParse(t *testing.T) {
	t.Run("Corridor", func(t *testing.T) {
		b, err := ParseString(corridor)
		require.NoError(t, err)
		assert.Equal(t, 3, b.Width())
		assert.Equal(t, 1, b.Height())
		assert.Equal(t, robot.Cell{X: 0, Y: 0}, b.Start())
		assert.Equal(t, robot.Cell{X: 2, Y: 0}, b.End())
		assert.Equal(t, b.Start(), b.Robot())
		assert.Equal(t, robot.North, b.Facing())
	})

	t.Run("Obstacles", func(t *testing.T) {
		b, err := ParseString(square)
		require.NoError(t, err)
		assert.False(t, b.Free(robot.Cell{X: 2, Y: 0}))
		assert.False(t, b.Free(robot.Cell{X: 1, Y: 1}))
		assert.True(t, b.Free(robot.Cell{X: 0, Y: 2}))
		assert.False(t, b.Free(robot.Cell{X: -1, Y: 0}))
	})

	tests := []struct {
		name  string
		input string
		err   error
		line  int
	}{
		{"IllegalWord", "start 0\n0 two end", ErrIllegalToken, 2},
		{"IllegalCharacter", "start, end", ErrIllegalToken, 1},
		{"Ragged", "start 0\n0 0 end", ErrRaggedBoard, 2},
		{"DuplicateStart", "start start end", ErrDuplicateStart, 1},
		{"DuplicateEnd", "start\nend\nend", ErrDuplicateEnd, 3},
		{"MissingStart", "0 end", ErrMissingStart, 0},
		{"MissingEnd", "start 0", ErrMissingEnd, 0},
		{"Empty", "\n\n", ErrEmptyBoard, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var perr *ParseError
			if tt.line > 0 {
				require.True(t, errors.As(err, &perr))
				assert.Equal(t, tt.line, perr.Line)
			} else {
				assert.False(t, errors.As(err, &perr))
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	b, err := ParseString(square)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = b.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "start 0 1 \n0 1 0 \n0 0 end \n", buf.String())

	path := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, b.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, b.String(), loaded.String())

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSense(t *testing.T) {
	b, err := ParseString(square)
	require.NoError(t, err)

	// Start sits in the south-west corner facing north (increasing rows).
	assert.Equal(t, robot.Snapshot{Front: true, Right: true}, b.Sense())

	b.SetRotation(robot.RotationTurn)
	require.True(t, b.Apply(robot.Right))
	assert.Equal(t, robot.Cell{X: 1, Y: 0}, b.Robot())
	assert.Equal(t, robot.East, b.Facing())
	// Facing east: the only free neighbor is the start behind the robot.
	assert.Equal(t, robot.Snapshot{Back: true}, b.Sense())
}

func TestApply(t *testing.T) {
	t.Run("FixedKeepsFacing", func(t *testing.T) {
		b, err := ParseString(square)
		require.NoError(t, err)

		assert.True(t, b.Apply(robot.Forward))
		assert.True(t, b.Apply(robot.Forward))
		assert.True(t, b.Apply(robot.Right))
		assert.Equal(t, robot.Cell{X: 1, Y: 2}, b.Robot())
		assert.Equal(t, robot.North, b.Facing())
	})

	t.Run("BlockedStaysPut", func(t *testing.T) {
		b, err := ParseString(square)
		require.NoError(t, err)

		assert.False(t, b.Apply(robot.Left))
		assert.False(t, b.Apply(robot.Backward))
		assert.Equal(t, b.Start(), b.Robot())
	})

	t.Run("TurnRotatesEvenWhenBlocked", func(t *testing.T) {
		b, err := ParseString(square)
		require.NoError(t, err)
		b.SetRotation(robot.RotationTurn)

		assert.False(t, b.Apply(robot.Backward))
		assert.Equal(t, robot.South, b.Facing())
		assert.Equal(t, b.Start(), b.Robot())

		// Facing south, the open north cell is now behind.
		assert.True(t, b.Apply(robot.Backward))
		assert.Equal(t, robot.Cell{X: 0, Y: 1}, b.Robot())
		assert.Equal(t, robot.North, b.Facing())
	})

	t.Run("Reset", func(t *testing.T) {
		b, err := ParseString(square)
		require.NoError(t, err)
		b.SetRotation(robot.RotationTurn)
		b.Apply(robot.Right)

		b.ResetRobot()
		assert.Equal(t, b.Start(), b.Robot())
		assert.Equal(t, robot.North, b.Facing())
		assert.False(t, b.AtEnd())
	})
}

func TestObstacles(t *testing.T) {
	b, err := New(3, 3, robot.Cell{}, robot.Cell{X: 2, Y: 2})
	require.NoError(t, err)

	require.NoError(t, b.SetObstacle(robot.Cell{X: 1, Y: 1}))
	assert.False(t, b.Free(robot.Cell{X: 1, Y: 1}))
	require.NoError(t, b.RemoveObstacle(robot.Cell{X: 1, Y: 1}))
	assert.True(t, b.Free(robot.Cell{X: 1, Y: 1}))

	assert.ErrorIs(t, b.SetObstacle(robot.Cell{}), ErrEndpointObstacle)
	assert.ErrorIs(t, b.SetObstacle(robot.Cell{X: 2, Y: 2}), ErrEndpointObstacle)
	assert.ErrorIs(t, b.SetObstacle(robot.Cell{X: 3, Y: 0}), ErrOutOfBounds)

	_, err = New(0, 3, robot.Cell{}, robot.Cell{})
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = New(2, 2, robot.Cell{}, robot.Cell{X: 2, Y: 2})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestGraph(t *testing.T) {
	b, err := ParseString(square)
	require.NoError(t, err)
	assert.True(t, b.Solvable())
	assert.Equal(t, 4, b.Distance())
	assert.Equal(t, 6, b.ReachableEdges())

	require.NoError(t, b.SetObstacle(robot.Cell{X: 1, Y: 2}))
	require.NoError(t, b.SetObstacle(robot.Cell{X: 2, Y: 1}))
	assert.False(t, b.Solvable())
	assert.Equal(t, -1, b.Distance())
}

func TestGenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, size := range [][2]int{{1, 1}, {2, 3}, {8, 8}, {15, 4}} {
		b, err := Generate(size[0], size[1], rng)
		require.NoError(t, err)
		assert.Equal(t, 2*size[0]+1, b.Width())
		assert.Equal(t, 2*size[1]+1, b.Height())
		assert.True(t, b.Solvable())

		// A perfect maze is a spanning tree over its rooms and the passages between them.
		rooms := size[0] * size[1]
		free := 2*rooms - 1
		assert.Equal(t, free-1, b.ReachableEdges())
	}

	_, err := Generate(0, 4, rng)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	_, err = Generate(4, maxMazeDimension+1, rng)
	assert.ErrorIs(t, err, ErrInvalidDimension)
}

func TestBraid(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b, err := Generate(6, 6, rng)
	require.NoError(t, err)
	before := b.ReachableEdges()

	removed := b.Braid(5, rng)
	assert.Equal(t, 5, removed)
	assert.Equal(t, before+2*removed, b.ReachableEdges())
	assert.True(t, b.Solvable())
}

func TestString(t *testing.T) {
	b, err := ParseString(square)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "+---+", lines[0])
	assert.Equal(t, "|  E|", lines[1])
	assert.Equal(t, "| # |", lines[2])
	assert.Equal(t, "|R #|", lines[3])
}
