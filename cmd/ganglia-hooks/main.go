// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"

	"github.com/juju/charm-ganglia/internal/hookenv"
	"github.com/juju/charm-ganglia/internal/runner"
	"github.com/juju/charm-ganglia/internal/service"
)

var logger = loggo.GetLogger("ganglia.cmd")

const (
	// exit_err is the value that is returned when the binary is run in an invalid way.
	exit_err = 2
	// exit_panic is the value that is returned when we exit due to an unhandled panic.
	exit_panic = 3
)

// Overridden in tests.
var (
	newRunner  = runner.NewRunner
	newDBusAPI = service.NewDBusAPI
)

// defaultLoggingConfig applies before any JUJU_LOGGING_CONFIG overrides.
const defaultLoggingConfig = "<root>=WARNING;ganglia=DEBUG"

func main() {
	os.Exit(Main(os.Args))
}

// Main is not redundant with main(), because it provides an entry point
// for testing with arbitrary command line arguments.
func Main(args []string) int {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			logger.Criticalf("Unhandled panic: \n%v\n%s", r, buf)
			os.Exit(exit_panic)
		}
	}()

	ctx, err := cmd.DefaultContext()
	if err != nil {
		cmd.WriteError(os.Stderr, err)
		os.Exit(exit_err)
	}

	environ := hookenv.OSEnviron()
	r := newRunner()
	if err := setupLogging(environ, r, ctx.Stderr); err != nil {
		cmd.WriteError(ctx.Stderr, err)
		return exit_err
	}
	return cmd.Main(newHookCommand(environ, r), ctx, commandArgs(args))
}

// commandArgs returns the arguments for the hook command. When the binary
// is invoked through a hook symlink, the link name is the hook to run.
func commandArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	name := filepath.Base(args[0])
	if name == commandName {
		return args[1:]
	}
	return append([]string{name}, args[1:]...)
}

// setupLogging configures the ganglia loggers and, inside a hook
// context, sends log entries to the unit log.
func setupLogging(environ hookenv.Environ, r runner.CommandRunner, stderr io.Writer) error {
	config := defaultLoggingConfig
	if environ.LoggingConfig != "" {
		config = fmt.Sprintf("%s;%s", config, environ.LoggingConfig)
	}
	if err := loggo.ConfigureLoggers(config); err != nil {
		return err
	}
	writer := loggo.NewSimpleWriter(stderr, loggo.DefaultFormatter)
	if environ.InHookContext() {
		writer = hookenv.NewLogWriter(hookenv.NewTools(r), writer)
	}
	// The default writer may already have been removed, so it is
	// registered afresh rather than replaced.
	_, _ = loggo.RemoveWriter(loggo.DefaultWriterName)
	return loggo.RegisterWriter(loggo.DefaultWriterName, writer)
}
