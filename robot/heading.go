package robot

import "fmt"

// Heading is an absolute direction in a frame fixed at the start of an attempt.
// Headings are numbered clockwise so that adding a Move turns by that many quarters.
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// Headings lists every heading in clockwise order.
var Headings = [4]Heading{North, East, South, West}

// deltas holds the unit step of each heading. North increases Y.
var deltas = [4]Cell{
	North: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: -1},
	West:  {X: -1, Y: 0},
}

// Turn returns the heading reached by rotating h toward the relative move m.
func (h Heading) Turn(m Move) Heading {
	return Heading((int(h) + int(m)) % 4)
}

// Opposite returns the heading pointing the other way.
func (h Heading) Opposite() Heading {
	return h.Turn(Backward)
}

// RelativeTo returns the move that points toward target when facing h.
func (h Heading) RelativeTo(target Heading) Move {
	return Move((int(target) - int(h) + 4) % 4)
}

// Delta returns the unit step taken when moving toward h.
func (h Heading) Delta() Cell {
	return deltas[h%4]
}

func (h Heading) String() string {
	switch h {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return fmt.Sprintf("Heading(%d)", int(h))
	}
}

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x" yaml:"x" bson:"x"`
	Y int `json:"y" yaml:"y" bson:"y"`
}

// Step returns the neighbor of c toward h.
func (c Cell) Step(h Heading) Cell {
	d := h.Delta()
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
