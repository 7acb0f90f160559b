package cli

// This file holds the process invokers: the Executor seam over os/exec, argument
// validators, and the two invocation styles the tools use (capture and forward).

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"strings"
)

// execCommand is a test seam for stubbing command creation in tests.
var execCommand = exec.Command

// Command represents a command that can be executed.
type Command interface {
	Output() ([]byte, error)
	Run() error
	SetStdout(w io.Writer)
	SetStderr(w io.Writer)
	SetStdin(r io.Reader)
}

// Executor creates commands for execution.
type Executor interface {
	Command(name string, args []string, validators ...ExecValidator) (Command, error)
}

// execCmd wraps exec.Cmd to implement Command interface.
type execCmd struct {
	cmd *exec.Cmd
}

func (c *execCmd) Output() ([]byte, error) { return c.cmd.Output() }
func (c *execCmd) Run() error              { return c.cmd.Run() }
func (c *execCmd) SetStdout(w io.Writer)   { c.cmd.Stdout = w }
func (c *execCmd) SetStderr(w io.Writer)   { c.cmd.Stderr = w }
func (c *execCmd) SetStdin(r io.Reader)    { c.cmd.Stdin = r }

// osExecutor is the production implementation using os/exec.
type osExecutor struct{}

func (osExecutor) Command(name string, args []string, validators ...ExecValidator) (Command, error) {
	if err := validateSpec(ExecSpec{Name: name, Args: args}, validators); err != nil {
		return nil, err
	}
	return &execCmd{cmd: execCommand(name, args...)}, nil
}

// DefaultExecutor returns the Executor backed by os/exec.
func DefaultExecutor() Executor { return osExecutor{} }

type ExecSpec struct {
	Name string
	Args []string
}

type ExecValidator func(ExecSpec) error

func validateSpec(spec ExecSpec, validators []ExecValidator) error {
	for _, validate := range validators {
		if err := validate(spec); err != nil {
			return err
		}
	}
	return nil
}

// NoControlChars rejects arguments carrying CR, LF or TAB.
func NoControlChars() ExecValidator {
	return func(spec ExecSpec) error {
		for _, arg := range spec.Args {
			if strings.ContainsAny(arg, "\r\n\t") {
				return wrapWithSentinelAndContext(ErrControlCharsNotAllowed, nil,
					fmt.Sprintf("%s: argument %q must not contain control characters", spec.Name, arg),
					map[string]any{"command": spec.Name})
			}
		}
		return nil
	}
}

// NonEmptyName rejects an empty executable name.
func NonEmptyName() ExecValidator {
	return func(spec ExecSpec) error {
		if strings.TrimSpace(spec.Name) == "" {
			return newWithSentinel(ErrExecutableRequired, "executable path must not be empty")
		}
		return nil
	}
}

// Capture runs name with args, waits for it, and returns its standard output.
// A non-zero exit is reported as ErrSubprocessFailed carrying the exit code and stderr.
func Capture(ex Executor, name string, args []string, validators ...ExecValidator) (string, error) {
	cmd, err := ex.Command(name, args, validators...)
	if err != nil {
		return "", err
	}
	var stderr bytes.Buffer
	cmd.SetStderr(&stderr)
	out, err := cmd.Output()
	if err != nil {
		return "", subprocessError(name, args, err, stderr.String())
	}
	return string(out), nil
}

// Stdio is the set of streams handed to a forwarded child process.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// OSStdio returns the current process's standard streams.
func OSStdio() Stdio {
	return Stdio{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Forward runs name with args on the given streams and blocks until it exits.
// A non-zero child exit is returned as ErrChildExited carrying the child's exit code.
// Interrupts are left to the child, which shares the terminal's process group.
func Forward(ex Executor, name string, args []string, stdio Stdio, validators ...ExecValidator) error {
	cmd, err := ex.Command(name, args, validators...)
	if err != nil {
		return err
	}
	cmd.SetStdin(stdio.In)
	cmd.SetStdout(stdio.Out)
	cmd.SetStderr(stdio.Err)

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	err = cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			// killed by a signal
			code = 1
		}
		return wrapWithSentinelAndContext(ErrChildExited, err,
			fmt.Sprintf("%s exited with status %d", name, code),
			map[string]any{"command": name, exitCodeKey: code})
	}
	return subprocessError(name, args, err, "")
}

func subprocessError(name string, args []string, cause error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	ctx := map[string]any{"command": name, "args": args}

	var exitErr *exec.ExitError
	switch {
	case errors.As(cause, &exitErr):
		code := exitErr.ExitCode()
		ctx[exitCodeKey] = code
		ctx["stderr"] = stderr
		msg := fmt.Sprintf("%s exited with status %d", name, code)
		if stderr != "" {
			msg += ": " + stderr
		}
		return wrapWithSentinelAndContext(ErrSubprocessFailed, cause, msg, ctx)
	case errors.Is(cause, exec.ErrNotFound), errors.Is(cause, fs.ErrNotExist):
		return wrapWithSentinelAndContext(ErrCommandNotFound, cause,
			fmt.Sprintf("%s: command not found", name), ctx)
	default:
		return wrapWithSentinelAndContext(ErrSubprocessFailed, cause,
			fmt.Sprintf("failed to run %s: %v", name, cause), ctx)
	}
}
