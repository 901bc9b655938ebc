// Package cli wires the trash engine to its command surface: argument
// parsing, logger bootstrap, and per-command execution with batch failures
// isolated per path.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alphapapa/rubbish/internal/config"
	"github.com/alphapapa/rubbish/internal/env"
	"github.com/alphapapa/rubbish/internal/trash"
	"github.com/charmbracelet/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

type Option struct {
	Config string `long:"config" description:"Path to config file" default:""`
	Bin    string `long:"bin" description:"Path to trash bin root (default: XDG home trash)" default:""`

	Meta MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool `short:"V" long:"version" description:"Show version"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string

	initOnce sync.Once
	initErr  error
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

func Run(v Version) error {
	cli := &CLI{version: v, runID: runID()}

	parser := flags.NewParser(&cli.option, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] COMMAND"
	parser.SubcommandsOptional = true

	for _, cmd := range []struct {
		name, short, long string
		data              interface{}
	}{
		{"trash", "Move paths to the trash bin", "Move each path into the trash bin, recording its original location.", &trashCommand{cli: cli}},
		{"restore", "Restore paths from the trash bin", "Restore each path to its original location, or to the directory given with --to.", &restoreCommand{cli: cli}},
		{"list", "List items in the trash bin", "Print the items held by the trash bin, oldest first.", &listCommand{cli: cli}},
		{"orphans", "List or delete orphaned trash files", "Report content files that lack a trashinfo record, optionally deleting them.", &orphansCommand{cli: cli}},
		{"empty", "Delete items trashed before a date", "Permanently delete every item trashed before the given date expression.", &emptyCommand{cli: cli}},
		{"bins", "Report trash bins on this system", "Report the home trash bin and any bins found on mounted filesystems.", &binsCommand{cli: cli}},
		{"debug", "View debug logs", "Print the debug log, following it when stdout is a terminal.", &debugCommand{cli: cli}},
	} {
		if _, err := parser.AddCommand(cmd.name, cmd.short, cmd.long, cmd.data); err != nil {
			return err
		}
	}

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if cli.option.Meta.Version {
		fmt.Fprint(os.Stdout, v.Print())
		return nil
	}

	if parser.Active == nil {
		parser.WriteHelp(os.Stdout)
	}
	return nil
}

// init sets up logging and loads the config. It runs lazily so that global
// flags are already parsed when a command executes.
func (c *CLI) init() error {
	c.initOnce.Do(func() {
		c.setupLogger()

		cfg, err := config.Parse(c.option.Config)
		if err != nil {
			c.initErr = err
			return
		}
		c.config = cfg
	})
	return c.initErr
}

func (c *CLI) setupLogger() {
	logDir := filepath.Dir(env.RUBBISH_LOG_PATH)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		_ = os.MkdirAll(logDir, 0755)
	}

	var w io.Writer
	if file, err := os.OpenFile(env.RUBBISH_LOG_PATH, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
		w = file
	} else {
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.DebugLevel,
	})
	logger = logger.With("run_id", c.runID)
	slog.SetDefault(slog.New(logger))

	slog.Debug("logger initialized",
		"version", c.version.Version,
		"revision", c.version.Revision)
}

// binRoot returns the trash bin root to operate on: the --bin flag, then
// the config, then the XDG home trash.
func (c *CLI) binRoot() string {
	if c.option.Bin != "" {
		return c.option.Bin
	}
	if c.config.Core.TrashDir != "" {
		return c.config.Core.TrashDir
	}
	return env.RUBBISH_TRASH_PATH
}

// openBin opens the bin selected by flags and config.
func (c *CLI) openBin() (*trash.Bin, error) {
	return trash.Open(c.binRoot(), trash.Options{
		FollowSymlinks: c.config.Core.Size.FollowSymlinks,
		FallbackCopy:   true,
	})
}
