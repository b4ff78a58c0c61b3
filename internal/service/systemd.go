// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package service controls the daemons the charm manages through systemd.
package service

import (
	"context"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("ganglia.service")

// DBusAPI is the subset of the systemd D-Bus connection used here.
type DBusAPI interface {
	ListUnitsByNamesContext(ctx context.Context, units []string) ([]dbus.UnitStatus, error)
	RestartUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	ReloadUnitContext(ctx context.Context, name string, mode string, ch chan<- string) (int, error)
	Close()
}

// DBusAPIFactory opens a connection to systemd.
type DBusAPIFactory = func(ctx context.Context) (DBusAPI, error)

// NewDBusAPI connects to the system bus.
func NewDBusAPI(ctx context.Context) (DBusAPI, error) {
	return dbus.NewWithContext(ctx)
}

// Manager starts, reloads and inspects systemd services.
type Manager struct {
	newDBus DBusAPIFactory
}

// NewManager returns a Manager that talks to systemd through newDBus.
func NewManager(newDBus DBusAPIFactory) *Manager {
	return &Manager{newDBus: newDBus}
}

func unitName(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".service"
}

func (m *Manager) conn(ctx context.Context, name string) (DBusAPI, error) {
	conn, err := m.newDBus(ctx)
	if err != nil {
		logger.Errorf("failed to connect to dbus for service %q: %v", name, err)
		return nil, errors.Annotate(err, "connecting to systemd")
	}
	return conn, nil
}

// Running reports whether the named service is loaded and active.
func (m *Manager) Running(ctx context.Context, name string) (bool, error) {
	conn, err := m.conn(ctx, name)
	if err != nil {
		return false, errors.Trace(err)
	}
	defer conn.Close()

	unit := unitName(name)
	units, err := conn.ListUnitsByNamesContext(ctx, []string{unit})
	if err != nil {
		return false, errors.Annotatef(err, "querying service %q", name)
	}
	for _, status := range units {
		if status.Name == unit {
			return status.LoadState == "loaded" && status.ActiveState == "active", nil
		}
	}
	return false, nil
}

// Restart restarts the named service, starting it if it is stopped.
func (m *Manager) Restart(ctx context.Context, name string) error {
	return m.job(ctx, "restart", name, func(conn DBusAPI, unit string, ch chan<- string) (int, error) {
		return conn.RestartUnitContext(ctx, unit, "replace", ch)
	})
}

// Reload asks the named service to reload its configuration.
func (m *Manager) Reload(ctx context.Context, name string) error {
	return m.job(ctx, "reload", name, func(conn DBusAPI, unit string, ch chan<- string) (int, error) {
		return conn.ReloadUnitContext(ctx, unit, "replace", ch)
	})
}

type jobFunc func(conn DBusAPI, unit string, ch chan<- string) (int, error)

func (m *Manager) job(ctx context.Context, op, name string, start jobFunc) error {
	conn, err := m.conn(ctx, name)
	if err != nil {
		return errors.Trace(err)
	}
	defer conn.Close()

	logger.Infof("%sing service %q", op, name)
	statusCh := make(chan string, 1)
	if _, err := start(conn, unitName(name), statusCh); err != nil {
		return errors.Annotatef(err, "dbus %s request for %q failed", op, name)
	}
	select {
	case status := <-statusCh:
		if status != "done" {
			return errors.Errorf("failed to %s %q (job result %q)", op, name, status)
		}
	case <-ctx.Done():
		return errors.Annotatef(ctx.Err(), "waiting to %s %q", op, name)
	}
	logger.Debugf("service %q %s done", name, op)
	return nil
}
