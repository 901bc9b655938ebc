package cli

import (
	"os"

	"github.com/alphapapa/rubbish/internal/debug"
)

type debugCommand struct {
	cli *CLI
}

func (d *debugCommand) Execute(_ []string) error {
	return debug.Logs(os.Stdout)
}
