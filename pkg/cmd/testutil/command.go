package testutil

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
)

// RunCommand runs command as the root of a test app and returns what it wrote.
func RunCommand(t *testing.T, command *cli.Command, args ...string) (string, error) {
	t.Helper()
	return RunCommandWithInput(t, command, strings.NewReader(""), args...)
}

// RunCommandWithInput is RunCommand with stdin read from in.
func RunCommandWithInput(t *testing.T, command *cli.Command, in io.Reader, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := &cli.Command{
		Name:      command.Name,
		Flags:     command.Flags,
		ArgsUsage: command.ArgsUsage,
		Action:    command.Action,
		Reader:    in,
		Writer:    &buf,
	}

	err := app.Run(t.Context(), append([]string{command.Name}, args...))
	return buf.String(), err
}
