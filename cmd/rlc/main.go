package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/vburojevic/rlc/internal/cli"
	"github.com/vburojevic/rlc/internal/config"
)

const quickStart = `rlc - runtime logger-level control for ROS 2 nodes

START HERE (this is the command you want):
  rlc ui

Other useful commands:
  rlc nodes                             List nodes with logger-level control
  rlc loggers -n talker                 List a node's loggers
  rlc set -n talker DEBUG               Set a node's root logger level
  rlc set -n talker -l rcl WARN         Set one logger's level
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	ctx := kong.Parse(&c,
		kong.Name("rlc"),
		kong.Description("Inspect and change the logger levels of running ROS 2 nodes\n\nSTART HERE: rlc ui"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		kong.Vars{
			"config_format": cfg.Format,
		},
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		os.Exit(1)
	}
}
