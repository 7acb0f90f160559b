// Command bctl runs kubectl with a bastion token. Every argument is forwarded to
// kubectl unchanged, and kubectl's exit status becomes bctl's.
package main

import (
	"fmt"
	"os"

	"bctl-devtools/internal/cli"
)

// No version vars: --version belongs to kubectl and is forwarded like every other argument.

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger, err := cli.NewConsoleLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	printer := cli.NewPrinter()
	cfg, err := cli.LoadCLIConfig()
	if err != nil {
		printer.Error(err)
		return 1
	}
	cli.SetDebugMode(cfg.Debug)

	mgr := cli.NewRelayManager(cli.DefaultExecutor(), cfg, logger)
	root := cli.NewRelayCmd(mgr)
	root.SetArgs(args)
	return cli.Execute(root, printer, logger)
}
