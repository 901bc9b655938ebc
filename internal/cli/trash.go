package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alphapapa/rubbish/internal/fs"
	"github.com/alphapapa/rubbish/internal/trash"
)

type trashCommand struct {
	cli *CLI

	Args struct {
		Paths []string `positional-arg-name:"PATHS" required:"1"`
	} `positional-args:"yes"`
}

func (t *trashCommand) Execute(_ []string) error {
	if err := t.cli.init(); err != nil {
		return err
	}
	slog.Debug("cli.trash started")
	defer slog.Debug("cli.trash finished")

	bin, err := t.cli.openBin()
	if err != nil {
		return err
	}

	// One path's failure must not abort the remaining paths
	var errs []error
	for _, path := range t.Args.Paths {
		if err := t.trashPath(bin, path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", t.cli.version.AppName, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *trashCommand) trashPath(bin *trash.Bin, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}

	if fs.IsUnsafePath(path) {
		return fmt.Errorf("refusing to trash unsafe path: %s", path)
	}

	item, err := trash.NewItem(bin, path)
	if err != nil {
		return err
	}

	if err := item.Trash(); err != nil {
		return err
	}

	if t.cli.config.Core.Verbose {
		if info.IsDir() {
			fmt.Printf("trashed directory '%s'\n", path)
		} else {
			fmt.Printf("trashed '%s'\n", path)
		}
	}
	return nil
}
