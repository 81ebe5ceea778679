package cli

import (
	"context"
	"fmt"

	"github.com/vburojevic/rlc/internal/output"
)

// GetCmd prints the current level of a node or one of its loggers
type GetCmd struct {
	Node   string `short:"n" required:"" help:"Node name"`
	Logger string `short:"l" help:"Logger name (default: the node's root logger)"`
	Cached bool   `help:"Read the last observed level only; no service call"`
}

// Run executes the get command
func (c *GetCmd) Run(globals *Globals) error {
	svc := service(globals)
	scope := scopeFor(c.Node, c.Logger)

	if c.Cached {
		level, ok := svc.CurrentLevel(scope)
		if !ok {
			return globals.Fail("LEVEL_UNKNOWN", "no observed level for %s", scope)
		}
		return c.emit(globals, string(level), true)
	}

	level, err := svc.Level(context.Background(), scope)
	if err != nil {
		return globals.Fail("GET_FAILED", "querying level of %s: %w", scope, err)
	}
	return c.emit(globals, string(level), false)
}

func (c *GetCmd) emit(globals *Globals, level string, cached bool) error {
	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteLevel(c.Node, c.Logger, level, cached)
	}
	fmt.Fprintln(globals.Stdout, styledLevel(globals, level))
	return nil
}
