package env

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

var (
	// RUBBISH_CONFIG_PATH is the path to the YAML config file.
	RUBBISH_CONFIG_PATH string

	// RUBBISH_LOG_PATH is the path to the debug log file.
	RUBBISH_LOG_PATH string

	// RUBBISH_TRASH_PATH is the root of the trash bin operated on.
	// Defaults to the per-user home trash of the XDG trash specification.
	RUBBISH_TRASH_PATH string
)

func init() {
	// https://github.com/charmbracelet/log/issues/35
	os.Setenv("CLICOLOR_FORCE", "1")

	// Follow https://specifications.freedesktop.org/basedir-spec/latest/
	if RUBBISH_CONFIG_PATH = os.Getenv("RUBBISH_CONFIG_PATH"); RUBBISH_CONFIG_PATH == "" {
		RUBBISH_CONFIG_PATH = filepath.Join(xdg.ConfigHome, "rubbish", "config.yaml")
	}

	if RUBBISH_LOG_PATH = os.Getenv("RUBBISH_LOG_PATH"); RUBBISH_LOG_PATH == "" {
		RUBBISH_LOG_PATH = filepath.Join(xdg.DataHome, "rubbish", "debug.log")
	}

	if RUBBISH_TRASH_PATH = os.Getenv("RUBBISH_TRASH_PATH"); RUBBISH_TRASH_PATH == "" {
		RUBBISH_TRASH_PATH = filepath.Join(xdg.DataHome, "Trash")
	}
}
