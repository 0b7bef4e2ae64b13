package cli

import "fmt"

// exitError ends the process with a specific code without printing anything more.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit %d: %s", e.code, e.msg)
}
