// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/charm-ganglia/internal/ganglia"
	"github.com/juju/charm-ganglia/internal/hookenv"
	"github.com/juju/charm-ganglia/internal/packaging"
	"github.com/juju/charm-ganglia/internal/runner"
	"github.com/juju/charm-ganglia/internal/service"
)

const commandName = "ganglia-hooks"

const hookDoc = `
Runs a hook of the ganglia charm. The hook name is taken from the
argument, or from JUJU_HOOK_NAME when no argument is given. Each hook
in the charm's hooks directory is a symlink to this binary, so the
hook name is also taken from the name the binary is invoked as.

Unknown hooks are skipped. The unit's status is assessed after every
hook that succeeds.
`

// hookCommand runs a single charm hook.
type hookCommand struct {
	cmd.CommandBase

	environ  hookenv.Environ
	runner   runner.CommandRunner
	newDBus  service.DBusAPIFactory
	getwd    func() (string, error)
	charmDir string
	hookName string
}

func newHookCommand(environ hookenv.Environ, r runner.CommandRunner) *hookCommand {
	return &hookCommand{
		environ: environ,
		runner:  r,
		newDBus: newDBusAPI,
		getwd:   os.Getwd,
	}
}

// Info implements cmd.Command.
func (c *hookCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:    commandName,
		Args:    "[<hook-name>]",
		Purpose: "run a ganglia charm hook",
		Doc:     hookDoc,
	}
}

// SetFlags implements cmd.Command.
func (c *hookCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.charmDir, "charm-dir", c.environ.CharmDir, "directory holding the charm's templates and config.yaml")
}

// Init implements cmd.Command.
func (c *hookCommand) Init(args []string) error {
	c.hookName = c.environ.HookName
	if len(args) > 0 {
		c.hookName, args = args[0], args[1:]
	}
	if c.hookName == "" {
		return errors.New("no hook specified")
	}
	if c.charmDir == "" {
		dir, err := c.getwd()
		if err != nil {
			return errors.Annotate(err, "finding charm directory")
		}
		c.charmDir = dir
	}
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *hookCommand) Run(_ *cmd.Context) error {
	charm, err := ganglia.NewCharm(ganglia.Config{
		Tools:    hookenv.NewTools(c.runner),
		Services: service.NewManager(c.newDBus),
		Packages: packaging.NewApt(c.runner),
		Runner:   c.runner,
		Environ:  c.environ,
		Paths:    ganglia.DefaultPaths(c.charmDir),
	})
	if err != nil {
		return errors.Trace(err)
	}
	registry, err := charm.Registry()
	if err != nil {
		return errors.Trace(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Debugf("running hook %s for %s", c.hookName, c.environ.UnitName)
	if c.environ.RelationName != "" {
		logger.Debugf("relation %s (%s), remote unit %q", c.environ.RelationName, c.environ.RelationID, c.environ.RemoteUnit)
	}
	return charm.RunHook(ctx, registry, c.hookName)
}
