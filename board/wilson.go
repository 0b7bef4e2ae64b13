package board

import (
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/mazebot/robot"
)

const maxMazeDimension = 64

// Generate creates a perfect maze of width x height rooms with Wilson's algorithm
// and lays it out on a (2*width+1) x (2*height+1) board, walls included. The start
// is the south-west room and the end the north-east room.
func Generate(width, height int, rng *rand.Rand) (*Board, error) {
	if min(width, height) <= 0 || max(width, height) > maxMazeDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	b, err := New(2*width+1, 2*height+1, robot.Cell{X: 1, Y: 1}, robot.Cell{X: 2*width - 1, Y: 2*height - 1})
	if err != nil {
		return nil, err
	}
	for y := range b.obstacles {
		for x := range b.obstacles[y] {
			b.obstacles[y][x] = true
		}
	}

	room := func(c robot.Cell) robot.Cell { return robot.Cell{X: 2*c.X + 1, Y: 2*c.Y + 1} }
	inRooms := func(c robot.Cell) bool { return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height }

	visited := map[robot.Cell]struct{}{{X: rng.Intn(width), Y: rng.Intn(height)}: {}}
	for c := range visited {
		b.open(room(c))
	}

	for len(visited) < width*height {
		start := robot.Cell{X: rng.Intn(width), Y: rng.Intn(height)}
		if _, done := visited[start]; done {
			continue
		}

		// Random walk until the tree is hit, remembering the last exit of every
		// room so that loops are erased.
		exits := make(map[robot.Cell]robot.Heading)
		for cell := start; ; {
			var h robot.Heading
			for {
				h = robot.Headings[rng.Intn(len(robot.Headings))]
				if inRooms(cell.Step(h)) {
					break
				}
			}
			exits[cell] = h
			cell = cell.Step(h)
			if _, done := visited[cell]; done {
				break
			}
		}

		// Carve the loop erased path into the tree.
		for cell := start; ; {
			if _, done := visited[cell]; done {
				break
			}
			visited[cell] = struct{}{}
			h := exits[cell]
			r := room(cell)
			b.open(r)
			b.open(r.Step(h))
			cell = cell.Step(h)
		}
	}

	return b, nil
}

// Braid removes up to n interior walls that separate two free cells, adding loops
// to the maze. It returns how many walls were removed.
func (b *Board) Braid(n int, rng *rand.Rand) int {
	var candidates []robot.Cell
	for y := 1; y < b.height-1; y++ {
		for x := 1; x < b.width-1; x++ {
			c := robot.Cell{X: x, Y: y}
			if (x+y)%2 == 0 || b.Free(c) {
				continue
			}
			vertical := b.Free(c.Step(robot.North)) && b.Free(c.Step(robot.South))
			horizontal := b.Free(c.Step(robot.East)) && b.Free(c.Step(robot.West))
			if vertical != horizontal {
				candidates = append(candidates, c)
			}
		}
	}

	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	removed := 0
	for _, c := range candidates {
		if removed == n {
			break
		}
		b.open(c)
		removed++
	}
	return removed
}

func (b *Board) open(c robot.Cell) {
	b.obstacles[c.Y][c.X] = false
}
