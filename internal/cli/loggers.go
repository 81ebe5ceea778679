package cli

import (
	"context"
	"fmt"

	"github.com/vburojevic/rlc/internal/output"
)

// LoggersCmd lists a node's loggers with their current levels
type LoggersCmd struct {
	Node string `short:"n" required:"" help:"Node name (see 'rlc nodes')"`
}

// Run executes the loggers command
func (c *LoggersCmd) Run(globals *Globals) error {
	svc := service(globals)

	states, err := svc.Loggers(context.Background(), c.Node)
	if err != nil {
		return globals.Fail("LOGGERS_FAILED", "querying loggers of %s: %w", c.Node, err)
	}

	if globals.Format == "ndjson" {
		loggers := make([]output.LoggerOutput, 0, len(states))
		for _, s := range states {
			loggers = append(loggers, output.LoggerOutput{Name: s.Name, Level: string(s.Level)})
		}
		return output.NewNDJSONWriter(globals.Stdout).WriteLoggers(c.Node, loggers)
	}

	if len(states) == 0 {
		fmt.Fprintf(globals.Stdout, "Node %s reports no loggers.\n", c.Node)
		return nil
	}
	for _, s := range states {
		fmt.Fprintf(globals.Stdout, "%-40s %s\n", s.Name, styledLevel(globals, string(s.Level)))
	}
	return nil
}
