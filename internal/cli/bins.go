package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alphapapa/rubbish/internal/trash"
	"github.com/olekukonko/tablewriter"
)

type binsCommand struct {
	cli *CLI
}

func (b *binsCommand) Execute(_ []string) error {
	if err := b.cli.init(); err != nil {
		return err
	}
	slog.Debug("cli.bins started")
	defer slog.Debug("cli.bins finished")

	candidates, err := trash.Discover()
	if err != nil {
		// The home bin is still reported
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	headers := []string{"Root", "Kind", "Valid"}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetHeaderColor(headerColors(len(headers))...)

	for _, c := range candidates {
		kind := "external"
		if c.Home {
			kind = "home"
		}
		valid := "no"
		if c.Valid {
			valid = "yes"
		}
		table.Append([]string{c.Root, kind, valid})
	}
	table.Render()

	return nil
}
