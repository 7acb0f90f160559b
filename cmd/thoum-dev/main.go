// Command thoum-dev holds developer helpers for thoum, such as printing the id token and
// session id of the current login.
package main

import (
	"fmt"
	"os"

	"bctl-devtools/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

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

	mgr := cli.NewGetTokenManager(cli.ThoumTool, cli.DefaultExecutor(), cfg, printer, logger)
	root := cli.NewDevToolCmd(mgr)
	root.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	root.SetArgs(args)
	return cli.Execute(root, printer, logger)
}
