package cli

import (
	"context"
	"os"

	"github.com/dubcdr/uni-listen/internal/calldecoder"
	"github.com/dubcdr/uni-listen/internal/txmonitor"

	"github.com/urfave/cli/v3"
)

// MonitorFactory builds the transaction monitor when the start command runs,
// along with a function releasing the connections it opened.
type MonitorFactory func(ctx context.Context) (monitor txmonitor.Service, closeFn func(), err error)

// SignatureLister exposes the configured method signatures.
type SignatureLister interface {
	Signatures() []calldecoder.Signature
}

// Run initializes and executes the unilisten CLI application.
//
// It registers all available commands, including:
//
//   - `start`: Runs the transaction monitor until interrupted.
//   - `methods`: Lists the monitored method signatures.
//
// The monitor is only built by the start command, so listing methods never
// connects to a node.
func Run(ctx context.Context, newMonitor MonitorFactory, signatures SignatureLister) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "unilisten",
		Description:           "Watches new blocks for calls to a contract and reports the decoded transactions.",
		Usage:                 "unilisten [command] [flags]",
		Commands: []*cli.Command{
			startMonitorCommand(newMonitor),
			listMethodsCommand(signatures),
		},
	}

	return app.Run(ctx, os.Args)
}
