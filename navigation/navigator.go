/*
Package navigation implements a maze exploration engine that only sees the four
walls around the robot.

The Navigator runs a Trémaux style depth-first search over cells keyed by
coordinates accumulated from its own moves. Every passage is walked at most twice,
once outward and once in retreat, so an attempt on a finite maze ends after at most
twice as many steps as the reachable part has passages: either on the exit, which
the harness detects, or with ErrExhausted once nothing is left to try.
*/
package navigation

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/mazebot/robot"
	"go.uber.org/zap"
)

// Decision errors.
var (
	ErrExhausted = errors.New("no passable direction left to explore")
	ErrFinished  = errors.New("attempt already reached the exit")
)

// rule names the selection rule behind a decision, for logs.
type rule string

const (
	ruleExplore   rule = "explore"
	ruleLoop      rule = "loop"
	ruleBacktrack rule = "backtrack"
	ruleRecover   rule = "recover"
)

// Config holds the settings of a Navigator.
type Config struct {
	// Rotation must match the harness the robot runs in.
	Rotation robot.RotationMode

	// Logger receives one debug entry per decision. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Navigator decides moves for any number of attempts. It keeps no per-attempt
// state of its own; everything lives in the Memory handed to Decide.
type Navigator struct {
	rotation robot.RotationMode
	logger   *zap.Logger
}

// New creates a Navigator.
func New(cfg Config) *Navigator {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Navigator{
		rotation: cfg.Rotation,
		logger:   cfg.Logger,
	}
}

// Rotation returns the rotation mode the navigator assumes.
func (n *Navigator) Rotation() robot.RotationMode {
	return n.rotation
}

// Decide selects the next move from the live reading and updates mem to the pose
// the robot will have once the harness applied it.
func (n *Navigator) Decide(mem *Memory, snap robot.Snapshot) (robot.Move, error) {
	switch mem.state {
	case StateDone:
		return 0, ErrFinished
	case StateUninitialized:
		mem.init()
	}

	pose := mem.pose
	if snap.Blocked() {
		return 0, fmt.Errorf("%w: all directions blocked at %s facing %s", ErrExhausted, pose.Cell, pose.Facing)
	}
	n.sense(mem, snap)

	for _, m := range robot.Priority {
		h := pose.Facing.Turn(m)
		if snap.Passable(m) && mem.Edge(pose.Cell, h) == EdgeOpenUnvisited {
			return n.advance(mem, m, ruleExplore), nil
		}
	}

	if mem.retreated {
		for _, m := range robot.Priority {
			h := pose.Facing.Turn(m)
			if snap.Passable(m) && mem.Edge(pose.Cell, h) == EdgeOpenVisited && mem.Traversals(pose.Cell, h) == 0 {
				return n.advance(mem, m, ruleLoop), nil
			}
		}
	}

	if f, ok := mem.Pop(); ok {
		back := f.Heading.Opposite()
		m := pose.Facing.RelativeTo(back)
		if f.To() == pose.Cell && snap.Passable(m) {
			return n.retreat(mem, m), nil
		}
		n.logger.Debug("discarding stale backtrack frame",
			zap.Stringer("cell", pose.Cell),
			zap.Stringer("from", f.From),
			zap.Stringer("heading", f.Heading),
		)
	}

	return n.recover(mem, snap)
}

// sense re-marks every direction around the current cell from the live reading.
func (n *Navigator) sense(mem *Memory, snap robot.Snapshot) {
	pose := mem.pose
	for _, m := range robot.Priority {
		h := pose.Facing.Turn(m)
		mem.MarkEdge(pose.Cell, h, n.classify(mem, pose.Cell, h, snap.Passable(m)))
	}
}

func (n *Navigator) classify(mem *Memory, c robot.Cell, h robot.Heading, passable bool) EdgeState {
	switch walked := mem.Traversals(c, h); {
	case !passable || walked >= 2:
		return EdgeDead
	case walked == 0 && !mem.Visited(c.Step(h)):
		return EdgeOpenUnvisited
	default:
		return EdgeOpenVisited
	}
}

// recover handles a backtrack stack that is empty or disagrees with the reading:
// take the least walked passage that is not dead yet.
func (n *Navigator) recover(mem *Memory, snap robot.Snapshot) (robot.Move, error) {
	pose := mem.pose
	best, bestWalked := robot.Move(-1), 2
	for _, m := range robot.Priority {
		h := pose.Facing.Turn(m)
		if !snap.Passable(m) || mem.Edge(pose.Cell, h) == EdgeDead {
			continue
		}
		if walked := mem.Traversals(pose.Cell, h); walked < bestWalked {
			best, bestWalked = m, walked
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: at %s facing %s after %d steps", ErrExhausted, pose.Cell, pose.Facing, mem.steps)
	}
	return n.advance(mem, best, ruleRecover), nil
}

// advance walks a passage outward and remembers how to come back.
func (n *Navigator) advance(mem *Memory, m robot.Move, r rule) robot.Move {
	pose := mem.pose
	h := pose.Facing.Turn(m)
	mem.Push(Frame{From: pose.Cell, Heading: h})
	if mem.traverse(pose.Cell, h) >= 2 {
		n.kill(mem, pose.Cell, h)
	} else {
		mem.MarkEdge(pose.Cell, h, EdgeOpenVisited)
	}
	mem.state = StateExploring
	mem.retreated = false
	n.move(mem, m, r)
	return m
}

// retreat walks back along the passage the robot arrived by and kills it.
func (n *Navigator) retreat(mem *Memory, m robot.Move) robot.Move {
	pose := mem.pose
	h := pose.Facing.Turn(m)
	mem.traverse(pose.Cell, h)
	n.kill(mem, pose.Cell, h)
	mem.state = StateBacktracking
	mem.retreated = true
	n.move(mem, m, ruleBacktrack)
	return m
}

func (n *Navigator) kill(mem *Memory, c robot.Cell, h robot.Heading) {
	mem.MarkEdge(c, h, EdgeDead)
	mem.MarkEdge(c.Step(h), h.Opposite(), EdgeDead)
}

// move applies m to the believed pose, exactly once per returned move.
func (n *Navigator) move(mem *Memory, m robot.Move, r rule) {
	from := mem.pose
	h := from.Facing.Turn(m)
	mem.pose = Pose{
		Cell:   from.Cell.Step(h),
		Facing: n.rotation.Facing(from.Facing, m),
	}
	mem.MarkVisited(mem.pose.Cell)
	mem.steps++

	n.logger.Debug("decided",
		zap.String("rule", string(r)),
		zap.Stringer("move", m),
		zap.Stringer("from", from.Cell),
		zap.Stringer("to", mem.pose.Cell),
		zap.Stringer("facing", mem.pose.Facing),
		zap.Stringer("state", mem.state),
		zap.Int("depth", mem.Depth()),
	)
}
