package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alphapapa/rubbish/internal/trash"
)

type restoreCommand struct {
	cli *CLI

	To string `long:"to" description:"Restore to this directory instead of the original location"`

	Args struct {
		Paths []string `positional-arg-name:"PATHS" required:"1"`
	} `positional-args:"yes"`
}

func (r *restoreCommand) Execute(_ []string) error {
	if err := r.cli.init(); err != nil {
		return err
	}
	slog.Debug("cli.restore started", "to", r.To)
	defer slog.Debug("cli.restore finished")

	if r.To != "" {
		fi, err := os.Stat(r.To)
		if err != nil {
			return fmt.Errorf("restore destination: %w", err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("restore destination is not a directory: %s", r.To)
		}
	}

	bin, err := r.cli.openBin()
	if err != nil {
		return err
	}

	// Lookup failures are surfaced per path; the rest of the batch
	// continues
	var errs []error
	for _, path := range r.Args.Paths {
		if err := r.restorePath(bin, path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.cli.version.AppName, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *restoreCommand) restorePath(bin *trash.Bin, path string) error {
	item, err := trash.NewItem(bin, path)
	if err != nil {
		return err
	}

	if err := item.Restore(r.To); err != nil {
		return err
	}

	if r.cli.config.Core.Verbose {
		fmt.Printf("restored '%s'\n", item.OriginalPath)
	}
	return nil
}
