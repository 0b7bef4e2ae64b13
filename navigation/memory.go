package navigation

import "github.com/beka-birhanu/mazebot/robot"

// EdgeState is the mark kept for one direction out of one cell.
type EdgeState int

const (
	EdgeUnknown       EdgeState = iota // EdgeUnknown means the direction was never sensed.
	EdgeOpenUnvisited                  // EdgeOpenUnvisited leads to a cell that was never entered.
	EdgeOpenVisited                    // EdgeOpenVisited is passable but leads somewhere already known.
	EdgeDead                           // EdgeDead is a wall or a passage walked both ways.
)

func (s EdgeState) String() string {
	switch s {
	case EdgeOpenUnvisited:
		return "open-unvisited"
	case EdgeOpenVisited:
		return "open-visited"
	case EdgeDead:
		return "dead"
	default:
		return "unknown"
	}
}

// State is the lifecycle stage of one attempt.
type State int

const (
	StateUninitialized State = iota
	StateExploring
	StateBacktracking
	StateDone
)

func (s State) String() string {
	switch s {
	case StateExploring:
		return "EXPLORING"
	case StateBacktracking:
		return "BACKTRACKING"
	case StateDone:
		return "DONE"
	default:
		return "UNINITIALIZED"
	}
}

// Pose is the believed cell and facing of the robot.
type Pose struct {
	Cell   robot.Cell
	Facing robot.Heading
}

// Frame records one forward move so it can be walked back.
type Frame struct {
	From    robot.Cell    // From is the cell the move started in.
	Heading robot.Heading // Heading is the absolute direction that was taken.
}

// To returns the cell the move ended in.
func (f Frame) To() robot.Cell {
	return f.From.Step(f.Heading)
}

type edgeKey struct {
	cell    robot.Cell
	heading robot.Heading
}

// undirected maps both sides of a passage onto the same key.
func undirected(c robot.Cell, h robot.Heading) edgeKey {
	if h == robot.South || h == robot.West {
		return edgeKey{cell: c.Step(h), heading: h.Opposite()}
	}
	return edgeKey{cell: c, heading: h}
}

// Memory is the state one attempt carries between decisions. The zero value is
// an uninitialized memory; the Navigator sets it up on the first decision.
type Memory struct {
	state      State
	pose       Pose
	visited    map[robot.Cell]struct{}
	marks      map[edgeKey]EdgeState
	traversals map[edgeKey]int
	stack      []Frame
	retreated  bool
	steps      int
}

// NewMemory returns an empty, uninitialized memory.
func NewMemory() *Memory {
	return &Memory{}
}

// init places the robot on the origin facing the reference heading.
func (m *Memory) init() {
	m.state = StateExploring
	m.pose = Pose{Cell: robot.Cell{}, Facing: robot.North}
	m.visited = map[robot.Cell]struct{}{{}: {}}
	m.marks = make(map[edgeKey]EdgeState)
	m.traversals = make(map[edgeKey]int)
	m.stack = nil
	m.retreated = false
	m.steps = 0
}

// Reset discards everything so the next decision starts a fresh attempt.
func (m *Memory) Reset() {
	*m = Memory{}
}

// Finish moves the attempt to its terminal state.
func (m *Memory) Finish() {
	m.state = StateDone
}

func (m *Memory) State() State { return m.state }

func (m *Memory) Pose() Pose { return m.pose }

func (m *Memory) SetPose(p Pose) { m.pose = p }

// Steps returns how many moves have been decided in this attempt.
func (m *Memory) Steps() int { return m.steps }

func (m *Memory) MarkVisited(c robot.Cell) {
	if m.visited == nil {
		m.visited = make(map[robot.Cell]struct{})
	}
	m.visited[c] = struct{}{}
}

func (m *Memory) Visited(c robot.Cell) bool {
	_, ok := m.visited[c]
	return ok
}

// VisitedCount returns the number of distinct cells entered so far.
func (m *Memory) VisitedCount() int {
	return len(m.visited)
}

// MarkEdge records the state of the direction h out of c.
func (m *Memory) MarkEdge(c robot.Cell, h robot.Heading, s EdgeState) {
	if m.marks == nil {
		m.marks = make(map[edgeKey]EdgeState)
	}
	m.marks[edgeKey{cell: c, heading: h}] = s
}

// Edge returns the mark of the direction h out of c.
func (m *Memory) Edge(c robot.Cell, h robot.Heading) EdgeState {
	return m.marks[edgeKey{cell: c, heading: h}]
}

// Traversals returns how often the passage between c and its neighbor toward h
// has been walked, in either direction.
func (m *Memory) Traversals(c robot.Cell, h robot.Heading) int {
	return m.traversals[undirected(c, h)]
}

func (m *Memory) traverse(c robot.Cell, h robot.Heading) int {
	if m.traversals == nil {
		m.traversals = make(map[edgeKey]int)
	}
	key := undirected(c, h)
	m.traversals[key]++
	return m.traversals[key]
}

func (m *Memory) Push(f Frame) {
	m.stack = append(m.stack, f)
}

// Pop removes and returns the most recent frame.
func (m *Memory) Pop() (Frame, bool) {
	if len(m.stack) == 0 {
		return Frame{}, false
	}
	last := len(m.stack) - 1
	f := m.stack[last]
	m.stack = m.stack[:last]
	return f, true
}

// Peek returns the most recent frame without removing it.
func (m *Memory) Peek() (Frame, bool) {
	if len(m.stack) == 0 {
		return Frame{}, false
	}
	return m.stack[len(m.stack)-1], true
}

// Depth returns the number of frames on the backtrack stack.
func (m *Memory) Depth() int {
	return len(m.stack)
}
