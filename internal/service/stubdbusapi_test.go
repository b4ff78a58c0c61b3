// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service_test

import (
	"context"

	"github.com/coreos/go-systemd/v22/dbus"
	"github.com/juju/testing"
)

type StubDbusAPI struct {
	*testing.Stub

	Units     []dbus.UnitStatus
	JobResult string
}

func (fda *StubDbusAPI) AddUnit(name, load, active string) {
	fda.Units = append(fda.Units, dbus.UnitStatus{
		Name:        name,
		LoadState:   load,
		ActiveState: active,
	})
}

func (fda *StubDbusAPI) ListUnitsByNamesContext(_ context.Context, units []string) ([]dbus.UnitStatus, error) {
	fda.Stub.AddCall("ListUnitsByNames", units)

	var result []dbus.UnitStatus
	for _, unit := range fda.Units {
		for _, name := range units {
			if unit.Name == name {
				result = append(result, unit)
			}
		}
	}
	return result, fda.NextErr()
}

func (fda *StubDbusAPI) RestartUnitContext(_ context.Context, name string, mode string, ch chan<- string) (int, error) {
	fda.Stub.AddCall("RestartUnit", name, mode)

	return fda.finish(ch)
}

func (fda *StubDbusAPI) ReloadUnitContext(_ context.Context, name string, mode string, ch chan<- string) (int, error) {
	fda.Stub.AddCall("ReloadUnit", name, mode)

	return fda.finish(ch)
}

func (fda *StubDbusAPI) finish(ch chan<- string) (int, error) {
	if err := fda.NextErr(); err != nil {
		return 0, err
	}
	result := fda.JobResult
	if result == "" {
		result = "done"
	}
	ch <- result
	return 1, nil
}

func (fda *StubDbusAPI) Close() {
	fda.Stub.AddCall("Close")

	fda.Stub.NextErr() // We don't return the error (just pop it off).
}
