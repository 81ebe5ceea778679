package cli

import (
	"context"
	"fmt"

	"github.com/vburojevic/rlc/internal/domain"
	"github.com/vburojevic/rlc/internal/output"
)

// SetCmd changes the level of a node or one of its loggers
type SetCmd struct {
	Node   string `short:"n" required:"" help:"Node name"`
	Logger string `short:"l" help:"Logger name (default: the node's root logger)"`
	Level  string `arg:"" help:"Severity level: DEBUG, INFO, WARN, ERROR or FATAL"`
}

// Run executes the set command
func (c *SetCmd) Run(globals *Globals) error {
	level, err := domain.ParseLevel(c.Level)
	if err != nil {
		return globals.Fail("INVALID_LEVEL", "%w", err)
	}

	svc := service(globals)
	scope := scopeFor(c.Node, c.Logger)

	changed, err := svc.SetLevel(context.Background(), scope, level)
	if err != nil {
		c.emit(globals, level, "failed", err.Error())
		return globals.Fail("SET_FAILED", "setting level of %s: %w", scope, err)
	}

	if !changed {
		return c.emit(globals, level, "unchanged", "")
	}
	return c.emit(globals, level, "applied", "")
}

func (c *SetCmd) emit(globals *Globals, level domain.Level, status, errMsg string) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteSetResult(
			c.Node, c.Logger, string(level), status, errMsg)
	}

	scope := scopeFor(c.Node, c.Logger)
	switch status {
	case "applied":
		fmt.Fprintf(globals.Stdout, "%s %s -> %s\n",
			output.Styles.Success.Render("applied"), scope, styledLevel(globals, string(level)))
	case "unchanged":
		fmt.Fprintf(globals.Stdout, "%s %s already at %s\n",
			output.Styles.Unchanged.Render("unchanged"), scope, styledLevel(globals, string(level)))
	}
	return nil
}
