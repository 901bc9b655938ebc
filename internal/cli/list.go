package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alphapapa/rubbish/internal/fs"
	"github.com/alphapapa/rubbish/internal/trash"
	"github.com/alphapapa/rubbish/internal/when"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type listCommand struct {
	cli *CLI

	Size          bool   `long:"size" description:"Show per-item and total sizes"`
	TrashedBefore string `long:"trashed-before" description:"Only list items trashed before this date (e.g. \"1 month ago\")"`
}

func (l *listCommand) Execute(_ []string) error {
	if err := l.cli.init(); err != nil {
		return err
	}
	slog.Debug("cli.list started")
	defer slog.Debug("cli.list finished")

	bin, err := l.cli.openBin()
	if err != nil {
		return err
	}

	items, err := bin.Items()
	if err != nil {
		return err
	}
	items = l.filter(bin, items)

	if l.TrashedBefore != "" {
		cutoff, err := when.Parse(l.TrashedBefore, time.Now())
		if err != nil {
			return err
		}
		items = lo.Filter(items, func(item *trash.Item, _ int) bool {
			return item.DeletionDate.Before(cutoff)
		})
	}

	reportSkipped(bin)

	if len(items) == 0 {
		fmt.Println("Trash bin is empty.")
		return nil
	}

	headers := []string{"Trashed At", "Original Path"}
	if l.Size {
		headers = []string{"Trashed At", "Size", "Original Path"}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetHeaderColor(headerColors(len(headers))...)

	var total int64
	for _, item := range items {
		trashedAt := item.DeletionDate.Local().Format("2006-01-02 15:04:05")
		if l.Size {
			size, err := item.Size()
			if err != nil {
				slog.Warn("unable to size item", "path", item.TrashedPath, "error", err)
			}
			total += size
			table.Append([]string{trashedAt, humanize.Bytes(uint64(size)), item.OriginalPath})
		} else {
			table.Append([]string{trashedAt, item.OriginalPath})
		}
	}
	table.Render()

	if l.Size {
		fmt.Printf("\nTotal size: %s\n", humanize.Bytes(uint64(total)))
	}
	return nil
}

// filter applies the config-driven include/exclude rules.
func (l *listCommand) filter(bin *trash.Bin, items []*trash.Item) []*trash.Item {
	return trash.Filter(items, trash.FilterOptions{
		Include: l.cli.config.List.Include,
		Exclude: l.cli.config.List.Exclude,
		SizeOf: func(path string) (int64, error) {
			return fs.PathSize(path, l.cli.config.Core.Size.FollowSymlinks)
		},
	})
}

// reportSkipped warns about metadata the enumeration had to skip.
func reportSkipped(bin *trash.Bin) {
	yellow := color.New(color.FgYellow).FprintfFunc()
	for _, path := range bin.OrphanedInfoFiles() {
		yellow(os.Stderr, "Warning: orphaned trashinfo file: %s\n", path)
	}
	for _, path := range bin.CorruptInfoFiles() {
		yellow(os.Stderr, "Warning: corrupt trashinfo file: %s\n", path)
	}
}

func headerColors(n int) []tablewriter.Colors {
	colors := make([]tablewriter.Colors, 0, n)
	for i := 0; i < n; i++ {
		colors = append(colors, tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiGreenColor})
	}
	return colors
}
