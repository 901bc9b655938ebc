package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alphapapa/rubbish/internal/when"
	"github.com/dustin/go-humanize"
)

type emptyCommand struct {
	cli *CLI

	TrashedBefore string `long:"trashed-before" required:"yes" description:"Delete items trashed before this date. Dates may be given in many formats, including natural language like \"1 month ago\"."`
	Size          bool   `long:"size" description:"Show total size of deleted items"`
}

func (e *emptyCommand) Execute(_ []string) error {
	if err := e.cli.init(); err != nil {
		return err
	}
	slog.Debug("cli.empty started", "trashed-before", e.TrashedBefore)
	defer slog.Debug("cli.empty finished")

	cutoff, err := when.Parse(e.TrashedBefore, time.Now())
	if err != nil {
		return err
	}

	bin, err := e.cli.openBin()
	if err != nil {
		return err
	}

	result, err := bin.EmptyBefore(cutoff)
	if err != nil {
		return err
	}

	reportSkipped(bin)

	fmt.Printf("Deleted %d items.\n", result.Deleted)
	if e.Size {
		fmt.Printf("Total size of items emptied: %s\n", humanize.Bytes(uint64(result.Reclaimed)))
	}
	if len(result.Failures) > 0 {
		return fmt.Errorf("failed to delete %d items", len(result.Failures))
	}
	return nil
}
