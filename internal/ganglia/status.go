// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package ganglia

import (
	"context"
	"fmt"

	"github.com/juju/errors"

	"github.com/juju/charm-ganglia/internal/hookenv"
)

// AssessStatus records the gmetad version and sets the unit's workload
// status from whether gmetad is running.
func (c *Charm) AssessStatus(ctx context.Context) error {
	version, err := c.packages.UpstreamVersion(GmetadService)
	if err != nil {
		return errors.Trace(err)
	}
	if version != "" {
		if err := c.tools.ApplicationVersionSet(version); err != nil {
			return errors.Trace(err)
		}
	}
	running, err := c.services.Running(ctx, GmetadService)
	if err != nil {
		logger.Warningf("cannot query %s: %v", GmetadService, err)
		running = false
	}
	if running {
		return errors.Trace(c.tools.StatusSet(hookenv.StatusActive, "Unit is ready"))
	}
	return errors.Trace(c.tools.StatusSet(hookenv.StatusBlocked, fmt.Sprintf("%s not running", GmetadService)))
}
