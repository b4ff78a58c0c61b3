// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package ganglia

import (
	"context"
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/juju/charm-ganglia/internal/hooks"
	"github.com/juju/charm-ganglia/internal/relation"
)

// Hook names handled by the charm.
const (
	InstallHook                    = "install"
	UpgradeCharmHook               = "upgrade-charm"
	ConfigChangedHook              = "config-changed"
	UpdateStatusHook               = "update-status"
	WebsiteRelationJoinedHook      = "website-relation-joined"
	HeadRelationJoinedHook         = "head-relation-joined"
	HeadRelationDepartedHook       = "head-relation-departed"
	HeadRelationBrokenHook         = "head-relation-broken"
	MasterRelationDepartedHook     = "master-relation-departed"
	MasterRelationBrokenHook       = "master-relation-broken"
	MasterRelationChangedHook      = "master-relation-changed"
	GangliaNodeRelationChangedHook = "ganglia-node-relation-changed"
	GangliaNodeRelationJoinedHook  = "ganglia-node-relation-joined"
)

func sequence(steps ...hooks.HookFunc) hooks.HookFunc {
	return func(ctx context.Context) error {
		for _, step := range steps {
			if err := step(ctx); err != nil {
				return errors.Trace(err)
			}
		}
		return nil
	}
}

// Install installs the packages and configures everything.
func (c *Charm) Install(ctx context.Context) error {
	return sequence(
		c.InstallPackages,
		c.ConfigureGmond,
		c.ConfigureGmetad,
		c.ConfigureApache,
		c.Expose,
	)(ctx)
}

// UpgradeCharm re-renders both daemon configurations.
func (c *Charm) UpgradeCharm(ctx context.Context) error {
	return sequence(
		c.ConfigureGmond,
		c.ConfigureGmetad,
		c.Expose,
	)(ctx)
}

// ConfigChanged re-renders both daemon configurations, which embed charm
// options.
func (c *Charm) ConfigChanged(ctx context.Context) error {
	return sequence(
		c.ConfigureGmond,
		c.ConfigureGmetad,
	)(ctx)
}

// WebsiteRelationJoined tells the web frontend consumer where to find
// ganglia.
func (c *Charm) WebsiteRelationJoined(context.Context) error {
	address, err := c.tools.UnitGet(relation.PrivateAddressKey)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.tools.RelationSet("", map[string]string{
		"port":     strconv.Itoa(HTTPPort),
		"hostname": address,
	}))
}

// HeadRelationJoined asks the master to poll this unit, then points the
// local monitor at the masters.
func (c *Charm) HeadRelationJoined(ctx context.Context) error {
	if err := c.tools.RelationSet("", map[string]string{relation.DataSourceKey: "true"}); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.ConfigureGmond(ctx))
}

// Registry returns the hook registry for the charm.
func (c *Charm) Registry() (*hooks.Registry, error) {
	registry := hooks.NewRegistry()
	for _, r := range []struct {
		fn    hooks.HookFunc
		names []string
	}{
		{c.Install, []string{InstallHook}},
		{c.UpgradeCharm, []string{UpgradeCharmHook}},
		{c.ConfigChanged, []string{ConfigChangedHook}},
		// The status is assessed after every hook.
		{func(context.Context) error { return nil }, []string{UpdateStatusHook}},
		{c.WebsiteRelationJoined, []string{WebsiteRelationJoinedHook}},
		{c.HeadRelationJoined, []string{HeadRelationJoinedHook}},
		{c.ConfigureGmond, []string{HeadRelationDepartedHook, HeadRelationBrokenHook}},
		{c.ConfigureGmetad, []string{
			MasterRelationDepartedHook,
			MasterRelationBrokenHook,
			MasterRelationChangedHook,
			GangliaNodeRelationChangedHook,
			GangliaNodeRelationJoinedHook,
		}},
	} {
		if err := registry.Register(r.fn, r.names...); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return registry, nil
}

// RunHook runs the named hook, then assesses the unit's status. Unknown
// hooks are skipped.
func (c *Charm) RunHook(ctx context.Context, registry *hooks.Registry, name string) error {
	err := registry.Execute(ctx, name)
	if hooks.IsUnregistered(err) {
		logger.Debugf("Unknown hook %s - skipping.", name)
		logger.Tracef("known hooks: %s", strings.Join(registry.Names(), ", "))
	} else if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.AssessStatus(ctx))
}
