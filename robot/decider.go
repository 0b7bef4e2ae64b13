package robot

// Decider chooses one move per simulation step.
type Decider interface {
	// Decide returns the next move for the given reading.
	Decide(Snapshot) (Move, error)

	// Reset discards everything remembered from the current attempt.
	Reset()
}

// Finisher is implemented by deciders that want to know the exit was reached.
type Finisher interface {
	Finish()
}

// DeciderFunc adapts a stateless function to the Decider interface.
type DeciderFunc func(Snapshot) (Move, error)

// Decide calls f(s).
func (f DeciderFunc) Decide(s Snapshot) (Move, error) {
	return f(s)
}

// Reset is a no-op.
func (f DeciderFunc) Reset() {}
