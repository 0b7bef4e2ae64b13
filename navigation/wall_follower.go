package navigation

import (
	"fmt"

	"github.com/beka-birhanu/mazebot/robot"
)

// WallFollower keeps its left hand on the wall. It needs no map but can circle
// forever around a loop that does not touch the outer wall, which makes it a
// useful baseline next to the Navigator.
type WallFollower struct {
	rotation robot.RotationMode
	facing   robot.Heading
	last     robot.Heading
}

// NewWallFollower creates a wall follower for a harness using the given rotation mode.
func NewWallFollower(rotation robot.RotationMode) *WallFollower {
	return &WallFollower{rotation: rotation}
}

// Decide implements robot.Decider. It tries the direction left of the last move
// first and then sweeps clockwise.
func (w *WallFollower) Decide(s robot.Snapshot) (robot.Move, error) {
	h := w.last.Turn(robot.Left)
	for range robot.Headings {
		m := w.facing.RelativeTo(h)
		if s.Passable(m) {
			w.last = h
			w.facing = w.rotation.Facing(w.facing, m)
			return m, nil
		}
		h = h.Turn(robot.Right)
	}
	return 0, fmt.Errorf("%w: all directions blocked", ErrExhausted)
}

// Reset implements robot.Decider.
func (w *WallFollower) Reset() {
	w.facing = robot.North
	w.last = robot.North
}
