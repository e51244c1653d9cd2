package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

// listMethodsCommand returns a CLI command that prints the monitored methods in
// priority order, with their selector and the arguments shown in reports.
//
// Usage example:
//
//	unilisten methods
func listMethodsCommand(signatures SignatureLister) *cli.Command {
	return &cli.Command{
		Name:        "methods",
		Description: "Lists the monitored contract methods in the order payloads are matched against them.",
		Usage:       "Prints the name, selector and reported arguments of every monitored method.",
		Action: func(ctx context.Context, c *cli.Command) error {
			table := tablewriter.NewWriter(c.Root().Writer)
			table.SetHeader([]string{"PRIORITY", "METHOD", "SELECTOR", "REPORTED ARGUMENTS"})
			table.SetAutoWrapText(false)

			for i, s := range signatures.Signatures() {
				table.Append([]string{
					strconv.Itoa(i + 1),
					s.Name,
					s.Selector(),
					strings.Join(s.Highlights, ", "),
				})
			}

			table.Render()
			return nil
		},
	}
}
