// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package runner executes external programs on behalf of the charm: hook
// tools, the package manager and the web server's site tools.
package runner

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/utils/v4/exec"
	"github.com/kballard/go-shellquote"
)

var logger = loggo.GetLogger("ganglia.runner")

// CommandRunner allows to run commands on the underlying system.
type CommandRunner interface {
	RunCommands(run exec.RunParams) (*exec.ExecResponse, error)
}

type defaultRunner struct{}

// RunCommands implements CommandRunner.
func (defaultRunner) RunCommands(run exec.RunParams) (*exec.ExecResponse, error) {
	return exec.RunCommands(run)
}

// NewRunner returns a CommandRunner that executes commands with a
// local shell.
func NewRunner() CommandRunner {
	return defaultRunner{}
}

// ExitError is returned by Run when a command completes with a non-zero
// exit code.
type ExitError struct {
	Command string
	Code    int
	Stderr  string
}

// Error implements error.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited %d", e.Command, e.Code)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// IsExitCode reports whether err is an ExitError with the given code.
func IsExitCode(err error, code int) bool {
	exitErr, ok := errors.Cause(err).(*ExitError)
	return ok && exitErr.Code == code
}

// Run runs the command described by args and returns its standard output.
// A nil env inherits the environment of the current process. Commands are
// not subject to any timeout.
func Run(r CommandRunner, env []string, args ...string) ([]byte, error) {
	if len(args) == 0 {
		return nil, errors.New("no command specified")
	}
	line := shellquote.Join(args...)
	logger.Tracef("running: %s", line)
	resp, err := r.RunCommands(exec.RunParams{
		Commands:    line,
		Environment: env,
	})
	if err != nil {
		return nil, errors.Annotatef(err, "running %s", args[0])
	}
	if resp.Code != 0 {
		return resp.Stdout, errors.Trace(&ExitError{
			Command: args[0],
			Code:    resp.Code,
			Stderr:  string(resp.Stderr),
		})
	}
	return resp.Stdout, nil
}
