package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/vburojevic/rlc/internal/config"
	"github.com/vburojevic/rlc/internal/output"
)

// CLI is the root command structure for rlc
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"${config_format}" enum:"text,ndjson" help:"Output format"`
	Quiet   bool   `short:"q" help:"Suppress warnings (only emit results)"`
	Verbose bool   `short:"v" help:"Show debug output (service probes, call diagnostics)"`

	// Commands
	Version  VersionCmd  `cmd:"" help:"Show version information"`
	Nodes    NodesCmd    `cmd:"" help:"List nodes that support logger-level control"`
	Loggers  LoggersCmd  `cmd:"" help:"List a node's loggers with their current levels"`
	Get      GetCmd      `cmd:"" help:"Get the current level of a node or logger"`
	Set      SetCmd      `cmd:"" help:"Set the level of a node or logger"`
	Levels   LevelsCmd   `cmd:"" help:"List the available severity levels"`
	Snapshot SnapshotCmd `cmd:"" help:"Dump the current levels of all capable nodes as JSON"`
	Apply    ApplyCmd    `cmd:"" help:"Apply levels from a snapshot file"`
	UI       UICmd       `cmd:"" help:"Interactive logger-level panel"`
	Doctor   DoctorCmd   `cmd:"" help:"Check system requirements and configuration"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config

	// Service substitutes a fake level service in tests. When nil, commands
	// build the real caller over the ros2 CLI.
	Service LevelService
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}

	// Apply config values if CLI flags weren't explicitly set
	if cfg != nil {
		if !cli.Quiet && cfg.Quiet {
			g.Quiet = cfg.Quiet
		}
		if !cli.Verbose && cfg.Verbose {
			g.Verbose = cfg.Verbose
		}
	}

	return g
}

// Debug prints a debug message if verbose mode is enabled
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.Verbose {
		fmt.Fprintf(g.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}

// Fail emits a command failure in the active format and returns it as the
// command error. In ndjson mode the failure is a structured record on
// stdout so scripted consumers never have to parse stderr.
func (g *Globals) Fail(code, format string, args ...interface{}) error {
	err := fmt.Errorf(format, args...)
	if g.Format == "ndjson" {
		output.NewNDJSONWriter(g.Stdout).WriteError(code, err.Error())
	} else {
		fmt.Fprintf(g.Stderr, "Error [%s]: %s\n", code, err)
	}
	return err
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
	} else {
		io.WriteString(globals.Stdout, "rlc version "+Version+" ("+Commit+")\n")
	}
	return nil
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
