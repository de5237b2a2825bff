// Command ecotrack is the EcoTracker and Green IT command line.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit status.
func run() int {
	config.InitGlobalConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return extractExitCode(root.ExecuteContext(ctx))
}

// extractExitCode maps a command error to an exit status. A GoalExitError
// anywhere in the chain supplies its own code.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}
	var goalErr *cli.GoalExitError
	if errors.As(err, &goalErr) {
		return goalErr.ExitCode
	}
	return 1
}
