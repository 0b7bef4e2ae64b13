/*
Package board is the simulation harness a robot runs in.

A Board is a rectangular grid of free cells and obstacles with one start and one
end cell. It tracks the real robot position and facing, answers sensor readings
relative to that facing and applies moves according to a robot.RotationMode.

Boards are read from and written to a plain text format: one row per line, cells
separated by whitespace, each cell one of 0 (free), 1 (obstacle), START or END.
*/
package board

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beka-birhanu/mazebot/robot"
)

// Board errors.
var (
	ErrEmptyBoard       = errors.New("board has no rows")
	ErrRaggedBoard      = errors.New("rows have different lengths")
	ErrMissingStart     = errors.New("board has no start cell")
	ErrMissingEnd       = errors.New("board has no end cell")
	ErrDuplicateStart   = errors.New("board has more than one start cell")
	ErrDuplicateEnd     = errors.New("board has more than one end cell")
	ErrOutOfBounds      = errors.New("cell is out of the board")
	ErrEndpointObstacle = errors.New("start and end cells cannot hold obstacles")
	ErrInvalidDimension = errors.New("invalid board dimensions")
)

const (
	tokenFree     = "0"
	tokenObstacle = "1"
	tokenStart    = "START"
	tokenEnd      = "END"
)

var keywords = []string{tokenFree, tokenObstacle, tokenStart, tokenEnd}

// Board is a grid maze with a robot in it. It is not safe for concurrent use.
type Board struct {
	width     int
	height    int
	obstacles [][]bool // obstacles[y][x]
	start     robot.Cell
	end       robot.Cell
	pos       robot.Cell
	facing    robot.Heading
	rotation  robot.RotationMode
}

// New creates an obstacle free board of the given size.
func New(width, height int, start, end robot.Cell) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}
	obstacles := make([][]bool, height)
	for y := range obstacles {
		obstacles[y] = make([]bool, width)
	}
	b := &Board{width: width, height: height, obstacles: obstacles}
	if !b.InBound(start) || !b.InBound(end) {
		return nil, ErrOutOfBounds
	}
	b.start, b.end = start, end
	b.ResetRobot()
	return b, nil
}

// Parse reads a board in the text format.
func Parse(r io.Reader) (*Board, error) {
	lines, err := Tokenize(r, keywords, false)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyBoard
	}

	width := len(lines[0])
	b := &Board{
		width:     width,
		height:    len(lines),
		obstacles: make([][]bool, len(lines)),
	}
	var foundStart, foundEnd bool
	for y, row := range lines {
		if len(row) != width {
			return nil, &ParseError{Line: row[0].Line, Err: ErrRaggedBoard}
		}
		b.obstacles[y] = make([]bool, width)
		for x, tok := range row {
			switch tok.Value {
			case tokenObstacle:
				b.obstacles[y][x] = true
			case tokenStart:
				if foundStart {
					return nil, &ParseError{Line: tok.Line, Err: ErrDuplicateStart}
				}
				foundStart = true
				b.start = robot.Cell{X: x, Y: y}
			case tokenEnd:
				if foundEnd {
					return nil, &ParseError{Line: tok.Line, Err: ErrDuplicateEnd}
				}
				foundEnd = true
				b.end = robot.Cell{X: x, Y: y}
			}
		}
	}
	if !foundStart {
		return nil, ErrMissingStart
	}
	if !foundEnd {
		return nil, ErrMissingEnd
	}

	b.ResetRobot()
	return b, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Board, error) {
	return Parse(strings.NewReader(s))
}

// Load reads a board file.
func Load(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening board: %w", err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing board %s: %w", path, err)
	}
	return b, nil
}

// Save writes the board to path, replacing any previous content.
func (b *Board) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	defer f.Close()

	if _, err := b.WriteTo(f); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	return nil
}

// WriteTo writes the board in the text format.
func (b *Board) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := robot.Cell{X: x, Y: y}
			switch {
			case c == b.start:
				sb.WriteString("start ")
			case c == b.end:
				sb.WriteString("end ")
			case b.obstacles[y][x]:
				sb.WriteString(tokenObstacle + " ")
			default:
				sb.WriteString(tokenFree + " ")
			}
		}
		sb.WriteString("\n")
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func (b *Board) Width() int { return b.width }

func (b *Board) Height() int { return b.height }

func (b *Board) Start() robot.Cell { return b.start }

func (b *Board) End() robot.Cell { return b.end }

// Robot returns the real robot position.
func (b *Board) Robot() robot.Cell { return b.pos }

// Facing returns the real robot facing.
func (b *Board) Facing() robot.Heading { return b.facing }

// AtEnd reports whether the robot stands on the end cell.
func (b *Board) AtEnd() bool { return b.pos == b.end }

// Rotation returns how moves are interpreted.
func (b *Board) Rotation() robot.RotationMode { return b.rotation }

// SetRotation changes how moves are interpreted.
func (b *Board) SetRotation(r robot.RotationMode) { b.rotation = r }

// ResetRobot puts the robot back on the start cell facing north.
func (b *Board) ResetRobot() {
	b.pos = b.start
	b.facing = robot.North
}

// InBound reports whether c lies on the board.
func (b *Board) InBound(c robot.Cell) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// Free reports whether c lies on the board and holds no obstacle.
func (b *Board) Free(c robot.Cell) bool {
	return b.InBound(c) && !b.obstacles[c.Y][c.X]
}

// SetObstacle places an obstacle on c.
func (b *Board) SetObstacle(c robot.Cell) error {
	return b.setObstacle(c, true)
}

// RemoveObstacle clears c.
func (b *Board) RemoveObstacle(c robot.Cell) error {
	return b.setObstacle(c, false)
}

func (b *Board) setObstacle(c robot.Cell, obstacle bool) error {
	if !b.InBound(c) {
		return ErrOutOfBounds
	}
	if c == b.start || c == b.end {
		return ErrEndpointObstacle
	}
	b.obstacles[c.Y][c.X] = obstacle
	return nil
}

// Sense returns which directions around the robot are free, relative to its facing.
func (b *Board) Sense() robot.Snapshot {
	open := func(m robot.Move) bool {
		return b.Free(b.pos.Step(b.facing.Turn(m)))
	}
	return robot.Snapshot{
		Front: open(robot.Forward),
		Left:  open(robot.Left),
		Right: open(robot.Right),
		Back:  open(robot.Backward),
	}
}

// Apply executes a move. A move into a wall or off the board leaves the robot in
// place, although in turn mode it still turns. It reports whether the robot moved.
func (b *Board) Apply(m robot.Move) bool {
	target := b.pos.Step(b.facing.Turn(m))
	b.facing = b.rotation.Facing(b.facing, m)
	if !b.Free(target) {
		return false
	}
	b.pos = target
	return true
}

// String renders the board with north at the top.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("+" + strings.Repeat("-", b.width) + "+\n")
	for y := b.height - 1; y >= 0; y-- {
		sb.WriteString("|")
		for x := 0; x < b.width; x++ {
			c := robot.Cell{X: x, Y: y}
			switch {
			case c == b.pos:
				sb.WriteString("R")
			case c == b.start:
				sb.WriteString("S")
			case c == b.end:
				sb.WriteString("E")
			case b.obstacles[y][x]:
				sb.WriteString("#")
			default:
				sb.WriteString(" ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", b.width) + "+\n")
	return sb.String()
}
