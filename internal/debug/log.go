package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/alphapapa/rubbish/internal/env"
	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

// Logs writes the debug log to w, following it when w is a terminal.
func Logs(w io.Writer) error {
	var shouldFollow bool
	if f, ok := w.(*os.File); ok {
		shouldFollow = isatty.IsTerminal(f.Fd())
	}
	t, err := tail.TailFile(env.RUBBISH_LOG_PATH, tail.Config{Follow: shouldFollow, ReOpen: shouldFollow})
	if err != nil {
		return err
	}
	for line := range t.Lines {
		fmt.Fprintln(w, line.Text)
	}
	return nil
}
