package robot

import (
	"fmt"
	"strings"
)

// RotationMode fixes how a harness interprets relative moves. The engine and the
// harness of one attempt must agree on it or the believed pose drifts silently.
type RotationMode int

const (
	// RotationFixed steps one cell toward the named direction without turning.
	RotationFixed RotationMode = iota
	// RotationTurn turns toward the named direction and steps in the same call.
	RotationTurn
)

// Facing returns the facing after m has been applied while facing f.
func (r RotationMode) Facing(f Heading, m Move) Heading {
	if r == RotationTurn {
		return f.Turn(m)
	}
	return f
}

func (r RotationMode) String() string {
	switch r {
	case RotationFixed:
		return "fixed"
	case RotationTurn:
		return "turn"
	default:
		return fmt.Sprintf("RotationMode(%d)", int(r))
	}
}

// ParseRotationMode parses "fixed" or "turn".
func ParseRotationMode(s string) (RotationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fixed":
		return RotationFixed, nil
	case "turn":
		return RotationTurn, nil
	}
	return 0, fmt.Errorf("unknown rotation mode %q", s)
}
