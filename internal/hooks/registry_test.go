// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package hooks_test

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/charm-ganglia/internal/hooks"
)

type registrySuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&registrySuite{})

func (s *registrySuite) TestExecute(c *gc.C) {
	var called []string
	registry := hooks.NewRegistry()
	err := registry.Register(func(context.Context) error {
		called = append(called, "configure")
		return nil
	}, "master-relation-changed", "master-relation-departed")
	c.Assert(err, jc.ErrorIsNil)

	c.Assert(registry.Execute(context.Background(), "master-relation-departed"), jc.ErrorIsNil)
	c.Assert(registry.Execute(context.Background(), "master-relation-changed"), jc.ErrorIsNil)
	c.Check(called, jc.DeepEquals, []string{"configure", "configure"})
	c.Check(registry.Names(), jc.DeepEquals, []string{"master-relation-changed", "master-relation-departed"})
}

func (s *registrySuite) TestExecuteUnregistered(c *gc.C) {
	registry := hooks.NewRegistry()

	err := registry.Execute(context.Background(), "foo-relation-changed")
	c.Assert(err, gc.ErrorMatches, `no handler registered for hook "foo-relation-changed"`)
	c.Check(hooks.IsUnregistered(err), jc.IsTrue)
	c.Check(hooks.IsUnregistered(errors.Trace(err)), jc.IsTrue)
}

func (s *registrySuite) TestExecuteHandlerError(c *gc.C) {
	registry := hooks.NewRegistry()
	err := registry.Register(func(context.Context) error {
		return errors.New("apt-get exited 100")
	}, "install")
	c.Assert(err, jc.ErrorIsNil)

	err = registry.Execute(context.Background(), "install")
	c.Assert(err, gc.ErrorMatches, "running install hook: apt-get exited 100")
	c.Check(hooks.IsUnregistered(err), jc.IsFalse)
}

func (s *registrySuite) TestRegisterDuplicate(c *gc.C) {
	registry := hooks.NewRegistry()
	noop := func(context.Context) error { return nil }
	c.Assert(registry.Register(noop, "install"), jc.ErrorIsNil)

	err := registry.Register(noop, "upgrade-charm", "install")
	c.Check(errors.IsAlreadyExists(err), jc.IsTrue)
	c.Check(registry.Names(), jc.DeepEquals, []string{"install"})
}

func (s *registrySuite) TestRegisterInvalid(c *gc.C) {
	registry := hooks.NewRegistry()
	c.Check(errors.IsNotValid(registry.Register(nil, "install")), jc.IsTrue)
	c.Check(errors.IsNotValid(registry.Register(func(context.Context) error { return nil }, "")), jc.IsTrue)
}
