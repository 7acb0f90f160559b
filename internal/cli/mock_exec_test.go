package cli

import (
	"io"
)

// MockCommand is a scripted Command.
type MockCommand struct {
	Name       string
	Args       []string
	OutputData []byte
	OutputErr  error
	RunErr     error
	RunFunc    func() error

	StdoutW io.Writer
	StderrW io.Writer
	StdinR  io.Reader
}

func (c *MockCommand) Output() ([]byte, error) { return c.OutputData, c.OutputErr }

func (c *MockCommand) Run() error {
	if c.RunFunc != nil {
		return c.RunFunc()
	}
	if c.StdoutW != nil && len(c.OutputData) > 0 {
		_, _ = c.StdoutW.Write(c.OutputData)
	}
	return c.RunErr
}

func (c *MockCommand) SetStdout(w io.Writer) { c.StdoutW = w }
func (c *MockCommand) SetStderr(w io.Writer) { c.StderrW = w }
func (c *MockCommand) SetStdin(r io.Reader)  { c.StdinR = r }

// MockExecutor records every command it creates. Validators run as in production.
type MockExecutor struct {
	CommandFunc   func(spec ExecSpec) *MockCommand
	DefaultOutput []byte
	Commands      []ExecSpec
	Created       []*MockCommand
}

func (m *MockExecutor) Command(name string, args []string, validators ...ExecValidator) (Command, error) {
	spec := ExecSpec{Name: name, Args: append([]string(nil), args...)}
	if err := validateSpec(spec, validators); err != nil {
		return nil, err
	}
	m.Commands = append(m.Commands, spec)

	var cmd *MockCommand
	if m.CommandFunc != nil {
		cmd = m.CommandFunc(spec)
	}
	if cmd == nil {
		cmd = &MockCommand{OutputData: m.DefaultOutput}
	}
	cmd.Name, cmd.Args = spec.Name, spec.Args
	m.Created = append(m.Created, cmd)
	return cmd, nil
}

func (m *MockExecutor) LastCommand() ExecSpec {
	if len(m.Commands) == 0 {
		return ExecSpec{}
	}
	return m.Commands[len(m.Commands)-1]
}
