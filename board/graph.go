package board

import "github.com/beka-birhanu/mazebot/robot"

// neighbors returns the free cells adjacent to c.
func (b *Board) neighbors(c robot.Cell) []robot.Cell {
	var result []robot.Cell
	for _, h := range robot.Headings {
		if n := c.Step(h); b.Free(n) {
			result = append(result, n)
		}
	}
	return result
}

// distances runs a breadth-first search from the start cell.
func (b *Board) distances() map[robot.Cell]int {
	dist := map[robot.Cell]int{b.start: 0}
	queue := []robot.Cell{b.start}
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		for _, n := range b.neighbors(cell) {
			if _, seen := dist[n]; !seen {
				dist[n] = dist[cell] + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}

// Solvable reports whether the end cell can be reached from the start cell.
func (b *Board) Solvable() bool {
	_, ok := b.distances()[b.end]
	return ok
}

// Distance returns the length of the shortest path from start to end, or -1.
func (b *Board) Distance() int {
	if d, ok := b.distances()[b.end]; ok {
		return d
	}
	return -1
}

// ReachableEdges counts the passages between free cells reachable from the start.
func (b *Board) ReachableEdges() int {
	edges := 0
	for cell := range b.distances() {
		// Count every passage once, from its south or west end.
		for _, h := range []robot.Heading{robot.North, robot.East} {
			if b.Free(cell.Step(h)) {
				edges++
			}
		}
	}
	return edges
}
