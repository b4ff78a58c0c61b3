// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package runner_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"github.com/juju/utils/v4/exec"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/charm-ganglia/internal/runner"
	"github.com/juju/charm-ganglia/internal/runner/mocks"
)

type runSuite struct {
	testing.IsolationSuite

	runner *mocks.MockCommandRunner
}

var _ = gc.Suite(&runSuite{})

func (s *runSuite) setupMocks(c *gc.C) *gomock.Controller {
	ctrl := gomock.NewController(c)
	s.runner = mocks.NewMockCommandRunner(ctrl)
	return ctrl
}

func (s *runSuite) TestRunQuotesArguments(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.runner.EXPECT().RunCommands(exec.RunParams{
		Commands: "status-set blocked 'gmetad not running'",
	}).Return(&exec.ExecResponse{Stdout: []byte("ok")}, nil)

	out, err := runner.Run(s.runner, nil, "status-set", "blocked", "gmetad not running")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(out), gc.Equals, "ok")
}

func (s *runSuite) TestRunPassesEnvironment(c *gc.C) {
	defer s.setupMocks(c).Finish()

	env := []string{"DEBIAN_FRONTEND=noninteractive"}
	s.runner.EXPECT().RunCommands(exec.RunParams{
		Commands:    "apt-get install gmetad",
		Environment: env,
	}).Return(&exec.ExecResponse{}, nil)

	_, err := runner.Run(s.runner, env, "apt-get", "install", "gmetad")
	c.Assert(err, jc.ErrorIsNil)
}

func (s *runSuite) TestRunNonZeroExit(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.runner.EXPECT().RunCommands(gomock.Any()).Return(&exec.ExecResponse{
		Code:   2,
		Stderr: []byte("no such key\n"),
	}, nil)

	_, err := runner.Run(s.runner, nil, "relation-get", "datasource")
	c.Assert(err, gc.ErrorMatches, "relation-get exited 2: no such key")
	c.Check(runner.IsExitCode(err, 2), jc.IsTrue)
	c.Check(runner.IsExitCode(err, 1), jc.IsFalse)
}

func (s *runSuite) TestRunStartFailure(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.runner.EXPECT().RunCommands(gomock.Any()).Return(nil, errors.New("boom"))

	_, err := runner.Run(s.runner, nil, "a2ensite", "ganglia.conf")
	c.Assert(err, gc.ErrorMatches, "running a2ensite: boom")
	c.Check(runner.IsExitCode(err, 1), jc.IsFalse)
}

func (s *runSuite) TestRunNoCommand(c *gc.C) {
	_, err := runner.Run(runner.NewRunner(), nil)
	c.Assert(err, gc.ErrorMatches, "no command specified")
}
