package robot

import "strings"

// Snapshot is one step's passability reading, relative to the robot's facing.
type Snapshot struct {
	Front bool `json:"front"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Back  bool `json:"back"`
}

// Passable reports whether the relative direction m is open.
func (s Snapshot) Passable(m Move) bool {
	switch m {
	case Forward:
		return s.Front
	case Right:
		return s.Right
	case Backward:
		return s.Back
	case Left:
		return s.Left
	}
	return false
}

// Blocked reports whether no direction is open.
func (s Snapshot) Blocked() bool {
	return !s.Front && !s.Left && !s.Right && !s.Back
}

// Open returns the passable directions in canonical priority order.
func (s Snapshot) Open() []Move {
	var open []Move
	for _, m := range Priority {
		if s.Passable(m) {
			open = append(open, m)
		}
	}
	return open
}

func (s Snapshot) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range Priority {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ToLower(m.String()))
		b.WriteByte(':')
		if s.Passable(m) {
			b.WriteString("open")
		} else {
			b.WriteString("wall")
		}
	}
	b.WriteByte('}')
	return b.String()
}
