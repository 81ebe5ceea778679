package cli

import (
	"context"
	"fmt"

	"github.com/vburojevic/rlc/internal/output"
)

// NodesCmd lists nodes that advertise the set_logger_level service
type NodesCmd struct{}

// Run executes the nodes command
func (c *NodesCmd) Run(globals *Globals) error {
	svc := service(globals)

	nodes, err := svc.NodeNames(context.Background())
	if err != nil {
		return globals.Fail("DISCOVERY_FAILED", "%w", err)
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteNodes(nodes)
	}

	if len(nodes) == 0 {
		fmt.Fprintln(globals.Stdout, "No nodes with logger-level control found.")
		return nil
	}
	for _, node := range nodes {
		fmt.Fprintln(globals.Stdout, node)
	}
	return nil
}
