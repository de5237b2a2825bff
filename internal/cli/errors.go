package cli

import "fmt"

// GoalExitCode is the exit status of "stats --exit-code" when the monthly
// goal is exceeded.
const GoalExitCode = 2

// GoalExitError carries a non-default exit status back to main after the
// command output has been written.
type GoalExitError struct {
	ExitCode int
	Reason   string
}

func (e *GoalExitError) Error() string {
	return fmt.Sprintf("%s (exit code %d)", e.Reason, e.ExitCode)
}
