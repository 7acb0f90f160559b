package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bctl-devtools/pkg/errx"
)

// Execute runs cmd and returns the process exit status. Failures are printed once;
// a forwarded child's exit is not, since the child already reported it.
func Execute(cmd *cobra.Command, printer *Printer, logger *zap.Logger) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, ErrChildExited) {
		logStructuredError(logger, err, "Command failed")
		printer.Error(err)
	}
	return errx.ExitCode(err)
}
