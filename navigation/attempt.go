package navigation

import "github.com/beka-birhanu/mazebot/robot"

// Attempt binds a Navigator to the memory of one maze attempt so it can be driven
// through the robot.Decider interface. Attempts must not be shared between
// concurrently running simulations.
type Attempt struct {
	nav *Navigator
	mem *Memory
}

// NewAttempt starts a fresh attempt.
func (n *Navigator) NewAttempt() *Attempt {
	return &Attempt{nav: n, mem: NewMemory()}
}

// Decide implements robot.Decider.
func (a *Attempt) Decide(s robot.Snapshot) (robot.Move, error) {
	return a.nav.Decide(a.mem, s)
}

// Reset implements robot.Decider. The next decision starts from an empty memory.
func (a *Attempt) Reset() {
	a.mem.Reset()
}

// Finish implements robot.Finisher.
func (a *Attempt) Finish() {
	a.mem.Finish()
}

// Memory exposes the attempt's memory for inspection.
func (a *Attempt) Memory() *Memory {
	return a.mem
}
