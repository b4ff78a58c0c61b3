// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package packaging installs and inspects Debian packages.
package packaging

import (
	"os"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/charm-ganglia/internal/runner"
)

var logger = loggo.GetLogger("ganglia.packaging")

// aptGetCommand holds the options that stop apt-get from prompting or
// replacing existing configuration files.
var aptGetCommand = []string{
	"apt-get", "--option=Dpkg::Options::=--force-confold",
	"--option=Dpkg::options::=--force-unsafe-io", "--assume-yes", "--quiet",
}

// aptGetEnvOptions are options we need to pass to apt-get to not have it
// prompt the user.
var aptGetEnvOptions = []string{"DEBIAN_FRONTEND=noninteractive"}

// Apt manages packages with apt-get and dpkg-query.
type Apt struct {
	runner  runner.CommandRunner
	environ func() []string
}

// NewApt returns an Apt that runs commands with r.
func NewApt(r runner.CommandRunner) *Apt {
	return &Apt{runner: r, environ: os.Environ}
}

// Install runs 'apt-get install' for the given packages.
func (a *Apt) Install(packages ...string) error {
	args := append([]string(nil), aptGetCommand...)
	args = append(args, "install")
	args = append(args, packages...)
	logger.Infof("Running: %s", args)
	env := append(a.environ(), aptGetEnvOptions...)
	if _, err := runner.Run(a.runner, env, args...); err != nil {
		return errors.Annotatef(err, "installing %s", strings.Join(packages, ", "))
	}
	return nil
}

// InstalledVersion returns the full version of an installed package, or
// the empty string if it is not installed.
func (a *Apt) InstalledVersion(pkg string) (string, error) {
	out, err := runner.Run(a.runner, nil, "dpkg-query", "--show", "--showformat=${Version}", pkg)
	if runner.IsExitCode(err, 1) {
		return "", nil
	} else if err != nil {
		return "", errors.Annotatef(err, "querying %s version", pkg)
	}
	return strings.TrimSpace(string(out)), nil
}

// UpstreamVersion returns the upstream part of an installed package's
// version, or the empty string if it is not installed.
func (a *Apt) UpstreamVersion(pkg string) (string, error) {
	version, err := a.InstalledVersion(pkg)
	if err != nil {
		return "", errors.Trace(err)
	}
	return UpstreamVersion(version), nil
}

// UpstreamVersion strips the epoch and Debian revision from a package
// version: "1:3.7.2-2ubuntu1" becomes "3.7.2".
func UpstreamVersion(version string) string {
	if i := strings.Index(version, ":"); i >= 0 {
		version = version[i+1:]
	}
	if i := strings.LastIndex(version, "-"); i >= 0 {
		version = version[:i]
	}
	return version
}
