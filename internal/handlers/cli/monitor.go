package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// startMonitorCommand returns a CLI command that runs the transaction monitor.
//
// Usage example:
//
//	unilisten start
//
// The monitor runs until it receives an interrupt (SIGINT or SIGTERM), which
// ends the command without error. Any fatal monitor error is returned.
func startMonitorCommand(newMonitor MonitorFactory) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Subscribes to new blocks and reports the decoded calls to the target contract.",
		Usage:       "Runs the transaction monitor. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			monitor, closeFn, err := newMonitor(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			return monitor.Run(ctx)
		},
	}
}
