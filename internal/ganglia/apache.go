// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package ganglia

import (
	"context"
	"os"
	"path/filepath"

	"github.com/juju/errors"

	"github.com/juju/charm-ganglia/internal/runner"
)

// ConfigureApache enables the ganglia web frontend site once, then
// reloads apache.
func (c *Charm) ConfigureApache(ctx context.Context) error {
	logger.Infof("Configuring apache vhost for ganglia master")
	// Lstat so that a dangling symlink still counts as present.
	_, err := os.Lstat(c.paths.ApacheSite)
	switch {
	case os.IsNotExist(err):
		if err := os.Symlink(c.paths.GangliaApacheConf, c.paths.ApacheSite); err != nil {
			return errors.Annotate(err, "linking ganglia site")
		}
		site := filepath.Base(c.paths.ApacheSite)
		if _, err := runner.Run(c.runner, nil, "a2ensite", site); err != nil {
			return errors.Annotatef(err, "enabling site %s", site)
		}
	case err != nil:
		return errors.Trace(err)
	}
	return errors.Trace(c.services.Reload(ctx, ApacheService))
}
