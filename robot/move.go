/*
Package robot defines the boundary between a maze harness and a decision engine.

The harness hands a Snapshot of the four relative directions to a Decider once per
step and applies the Move it gets back. Headings are only used by code that keeps its
own believed orientation; the harness never reports absolute position or facing.
*/
package robot

import (
	"fmt"
	"strings"
)

// Move is a relative movement command. The numeric values double as clockwise
// quarter turns from the current facing.
type Move int

const (
	Forward  Move = iota // Forward moves toward the current facing.
	Right                // Right moves toward the facing turned clockwise.
	Backward             // Backward moves away from the current facing.
	Left                 // Left moves toward the facing turned counter-clockwise.
)

// Priority is the canonical order used to break ties between equally good moves.
var Priority = [4]Move{Forward, Left, Right, Backward}

// Valid reports whether m is one of the four known moves.
func (m Move) Valid() bool {
	return m >= Forward && m <= Left
}

// Reverse returns the move pointing the opposite way.
func (m Move) Reverse() Move {
	return (m + 2) % 4
}

func (m Move) String() string {
	switch m {
	case Forward:
		return "FORWARD"
	case Right:
		return "RIGHT"
	case Backward:
		return "BACKWARD"
	case Left:
		return "LEFT"
	default:
		return fmt.Sprintf("Move(%d)", int(m))
	}
}

// MarshalText encodes the move by name.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid move %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a move name, ignoring case.
func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMove converts a move name into a Move.
func ParseMove(s string) (Move, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FORWARD":
		return Forward, nil
	case "RIGHT":
		return Right, nil
	case "BACKWARD":
		return Backward, nil
	case "LEFT":
		return Left, nil
	}
	return 0, fmt.Errorf("unknown move %q", s)
}
