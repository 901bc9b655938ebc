package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alphapapa/rubbish/internal/fs"
	"github.com/dustin/go-humanize"
)

type orphansCommand struct {
	cli *CLI

	Empty bool `long:"empty" description:"Delete the orphans from the bin"`
	Size  bool `long:"size" description:"Show orphan sizes"`
}

func (o *orphansCommand) Execute(_ []string) error {
	if err := o.cli.init(); err != nil {
		return err
	}
	slog.Debug("cli.orphans started", "empty", o.Empty)
	defer slog.Debug("cli.orphans finished")

	bin, err := o.cli.openBin()
	if err != nil {
		return err
	}

	orphans, err := bin.Orphans()
	if err != nil {
		return err
	}

	if len(orphans) == 0 {
		fmt.Println("No orphaned trash files found.")
		return nil
	}

	if o.Empty {
		return o.emptyOrphans(orphans)
	}

	var total int64
	for _, path := range orphans {
		if o.Size {
			size, err := fs.PathSize(path, o.cli.config.Core.Size.FollowSymlinks)
			if err != nil {
				slog.Warn("unable to size orphan", "path", path, "error", err)
			}
			total += size
			fmt.Printf("%s (%s)\n", path, humanize.Bytes(uint64(size)))
		} else {
			fmt.Println(path)
		}
	}
	if o.Size {
		fmt.Printf("Total size: %s\n", humanize.Bytes(uint64(total)))
	}
	return nil
}

// emptyOrphans deletes orphaned content files, tolerating per-path failures.
func (o *orphansCommand) emptyOrphans(orphans []string) error {
	var total int64
	var failed int
	for _, path := range orphans {
		size, err := fs.PathSize(path, o.cli.config.Core.Size.FollowSymlinks)
		if err != nil {
			size = 0
		}

		if err := os.RemoveAll(path); err != nil {
			slog.Warn("unable to delete orphan", "path", path, "error", err)
			fmt.Fprintf(os.Stderr, "%s: %v\n", o.cli.version.AppName, err)
			failed++
			continue
		}

		slog.Info("deleted orphan", "path", path, "size", size)
		total += size
	}

	fmt.Printf("Total size of orphans emptied: %s\n", humanize.Bytes(uint64(total)))
	if failed > 0 {
		return fmt.Errorf("failed to delete %d orphans", failed)
	}
	return nil
}
