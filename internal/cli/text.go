package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/vburojevic/rlc/internal/output"
)

// styledLevel colors a severity label when stdout is a terminal.
func styledLevel(globals *Globals, level string) string {
	if isTTY(globals) {
		return output.LevelStyle(level).Render(level)
	}
	return level
}

func isTTY(globals *Globals) bool {
	f, ok := globals.Stdout.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
