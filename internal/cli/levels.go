package cli

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/vburojevic/rlc/internal/domain"
	"github.com/vburojevic/rlc/internal/output"
	"golang.org/x/sync/errgroup"
)

// LevelsCmd lists the fixed severity levels, optionally with the current
// level of every capable node
type LevelsCmd struct {
	Current bool `help:"Also query the current root-logger level of every capable node"`
	Jobs    int  `default:"4" help:"Concurrent node queries with --current"`
}

// Run executes the levels command
func (c *LevelsCmd) Run(globals *Globals) error {
	svc := service(globals)

	if !c.Current {
		if globals.Format == "ndjson" {
			w := output.NewNDJSONWriter(globals.Stdout)
			for _, level := range svc.Levels() {
				if err := w.WriteLevel("", "", string(level), false); err != nil {
					return err
				}
			}
			return nil
		}
		for _, level := range svc.Levels() {
			fmt.Fprintln(globals.Stdout, styledLevel(globals, string(level)))
		}
		return nil
	}

	ctx := context.Background()
	nodes, err := svc.NodeNames(ctx)
	if err != nil {
		return globals.Fail("DISCOVERY_FAILED", "%w", err)
	}

	// Each node is still queried by its own independent call; the fan-out
	// only overlaps the waits.
	type nodeLevel struct {
		node  string
		level string
	}
	results := make([]nodeLevel, len(nodes))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Jobs)
	for i, node := range nodes {
		g.Go(func() error {
			level, err := svc.Level(gctx, domain.NodeScope(node))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[i] = nodeLevel{node: node, level: "-"}
				return nil
			}
			results[i] = nodeLevel{node: node, level: string(level)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return globals.Fail("LEVELS_FAILED", "%w", err)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].node < results[j].node })

	if globals.Format == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		for _, r := range results {
			if r.level == "-" {
				if err := w.WriteWarning("no level from " + r.node); err != nil {
					return err
				}
				continue
			}
			if err := w.WriteLevel(r.node, "", r.level, false); err != nil {
				return err
			}
		}
		return nil
	}

	table := tablewriter.NewTable(globals.Stdout)
	table.Header("NODE", "LEVEL")
	for _, r := range results {
		table.Append([]string{r.node, r.level})
	}
	return table.Render()
}
