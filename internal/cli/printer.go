package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"

	"bctl-devtools/pkg/credential"
	"bctl-devtools/pkg/errx"
)

// Printer writes the tools' own output. Styling is only applied to terminals so
// piped output stays byte-stable.
type Printer struct {
	Out      io.Writer
	Err      io.Writer
	ColorOut bool
	ColorErr bool
}

// NewPrinter returns a Printer on the process's stdout and stderr.
func NewPrinter() *Printer {
	return &Printer{
		Out:      os.Stdout,
		Err:      os.Stderr,
		ColorOut: isTerminal(os.Stdout),
		ColorErr: isTerminal(os.Stderr),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Credential prints the record's labeled values, id token first.
func (p *Printer) Credential(rec credential.Record) error {
	if !p.ColorOut {
		return credential.Print(p.Out, rec)
	}
	for _, f := range rec.Fields() {
		if _, err := fmt.Fprintf(p.Out, "%s\n%s\n", pterm.FgCyan.Sprint(f.Label+":"), f.Value); err != nil {
			return err
		}
	}
	return nil
}

// Error prints the user-facing message of err. In debug mode coded errors are
// followed by their full chain.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	msg := errx.UserString(err)
	if !p.ColorErr {
		fmt.Fprintf(p.Err, "Error: %s\n", msg)
	} else {
		pterm.Error.WithWriter(p.Err).Println(msg)
	}
	if IsDebugMode() && errx.IsError(err) {
		fmt.Fprintln(p.Err, errx.DebugString(err))
	}
}
