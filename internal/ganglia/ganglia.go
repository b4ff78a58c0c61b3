// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package ganglia implements the hooks of the ganglia charm: it renders
// the gmetad and gmond configuration from relation data, installs the
// packages, publishes the web frontend and reports the unit's status.
package ganglia

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/charm-ganglia/internal/config"
	"github.com/juju/charm-ganglia/internal/hookenv"
	"github.com/juju/charm-ganglia/internal/relation"
	"github.com/juju/charm-ganglia/internal/render"
	"github.com/juju/charm-ganglia/internal/runner"
	"github.com/juju/charm-ganglia/internal/service"
)

var logger = loggo.GetLogger("ganglia.charm")

// Services managed by the charm.
const (
	GmetadService = "gmetad"
	GmondService  = "ganglia-monitor"
	ApacheService = "apache2"
)

// Packages installed by the charm.
var Packages = []string{
	"ganglia-webfrontend",
	GmetadService,
	GmondService,
}

// Relation endpoints.
const (
	MasterRelation  = "master"
	HeadRelation    = "head"
	WebsiteRelation = "website"
)

// HTTPPort is the port the web frontend listens on.
const HTTPPort = 80

// Template names under the charm's templates directory.
const (
	GmetadTemplate = "gmetad.conf"
	GmondTemplate  = "gmond.conf"
)

// Paths holds the files the charm reads and writes.
type Paths struct {
	CharmDir          string
	GmetadConf        string
	GmondConf         string
	ApacheSite        string
	GangliaApacheConf string
}

// DefaultPaths returns the standard locations for a charm in charmDir.
func DefaultPaths(charmDir string) Paths {
	return Paths{
		CharmDir:          charmDir,
		GmetadConf:        "/etc/ganglia/gmetad.conf",
		GmondConf:         "/etc/ganglia/gmond.conf",
		ApacheSite:        "/etc/apache2/sites-available/ganglia.conf",
		GangliaApacheConf: "/etc/ganglia-webfrontend/apache.conf",
	}
}

// RestartMap returns the services to restart when each configuration
// file changes.
func (p Paths) RestartMap() service.RestartMap {
	return service.RestartMap{
		p.GmetadConf: {GmetadService},
		p.GmondConf:  {GmondService},
	}
}

// HookTools is the subset of hook tools the charm uses.
type HookTools interface {
	relation.Reader
	config.Getter
	RelationSet(relationID string, settings map[string]string) error
	UnitGet(key string) (string, error)
	OpenPort(port int, protocol string) error
	StatusSet(status hookenv.Status, message string) error
	ApplicationVersionSet(version string) error
}

// ServiceManager controls system services.
type ServiceManager interface {
	service.Restarter
	Reload(ctx context.Context, name string) error
	Running(ctx context.Context, name string) (bool, error)
}

// PackageManager installs and inspects packages.
type PackageManager interface {
	Install(packages ...string) error
	UpstreamVersion(pkg string) (string, error)
}

// Config holds the dependencies of a Charm.
type Config struct {
	Tools    HookTools
	Services ServiceManager
	Packages PackageManager
	Runner   runner.CommandRunner
	Environ  hookenv.Environ
	Paths    Paths
}

// Validate returns an error if the config cannot be used to run hooks.
func (c Config) Validate() error {
	if c.Tools == nil {
		return errors.NotValidf("nil Tools")
	}
	if c.Services == nil {
		return errors.NotValidf("nil Services")
	}
	if c.Packages == nil {
		return errors.NotValidf("nil Packages")
	}
	if c.Runner == nil {
		return errors.NotValidf("nil Runner")
	}
	if c.Paths.GmetadConf == "" || c.Paths.GmondConf == "" {
		return errors.NotValidf("empty config paths")
	}
	if c.Paths.ApacheSite == "" || c.Paths.GangliaApacheConf == "" {
		return errors.NotValidf("empty apache paths")
	}
	return nil
}

// Charm runs the ganglia hooks.
type Charm struct {
	tools    HookTools
	services ServiceManager
	packages PackageManager
	runner   runner.CommandRunner
	environ  hookenv.Environ
	paths    Paths
	renderer *render.Renderer
}

// NewCharm returns a Charm using the dependencies in cfg.
func NewCharm(cfg Config) (*Charm, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Charm{
		tools:    cfg.Tools,
		services: cfg.Services,
		packages: cfg.Packages,
		runner:   cfg.Runner,
		environ:  cfg.Environ,
		paths:    cfg.Paths,
		renderer: render.NewRenderer(cfg.Paths.CharmDir),
	}, nil
}

func (c *Charm) restartOnChange(ctx context.Context, fn func() error) error {
	return service.RestartOnChange(ctx, c.paths.RestartMap(), c.services, fn)
}

// ConfigureGmetad renders gmetad.conf from the units related on the
// master relation and restarts gmetad if it changed.
func (c *Charm) ConfigureGmetad(ctx context.Context) error {
	return c.restartOnChange(ctx, func() error {
		logger.Infof("Configuring gmetad for master unit")
		sources, err := relation.CollectDataSources(c.tools, MasterRelation)
		if err != nil {
			return errors.Trace(err)
		}
		cfg, err := config.Read(c.tools, c.paths.CharmDir)
		if err != nil {
			return errors.Trace(err)
		}
		return c.renderer.WriteFile(c.paths.GmetadConf, GmetadTemplate, render.Context{
			"data_sources": sources,
			"gridname":     cfg.GridName,
		})
	})
}

// ConfigureGmond renders gmond.conf so the monitor sends its metrics to
// the units related on the head relation, and restarts the monitor if
// it changed.
func (c *Charm) ConfigureGmond(ctx context.Context) error {
	return c.restartOnChange(ctx, func() error {
		logger.Infof("Configuring ganglia monitoring daemon")
		masters, err := relation.CollectAddresses(c.tools, HeadRelation)
		if err != nil {
			return errors.Trace(err)
		}
		serviceName, err := c.environ.ServiceName()
		if err != nil {
			return errors.Trace(err)
		}
		cfg, err := config.Read(c.tools, c.paths.CharmDir)
		if err != nil {
			return errors.Trace(err)
		}
		return c.renderer.WriteFile(c.paths.GmondConf, GmondTemplate, render.Context{
			"service_name":      serviceName,
			"masters":           masters,
			"dead_host_timeout": cfg.DeadHostTimeout,
		})
	})
}

// Expose opens the web frontend port.
func (c *Charm) Expose(context.Context) error {
	return errors.Annotate(c.tools.OpenPort(HTTPPort, "tcp"), "exposing ganglia")
}

// InstallPackages installs the ganglia packages.
func (c *Charm) InstallPackages(context.Context) error {
	if err := c.tools.StatusSet(hookenv.StatusMaintenance, "Installing packages"); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.packages.Install(Packages...))
}
