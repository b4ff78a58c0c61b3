// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package relation reads the settings published by units related to the
// local unit and assembles them into the shapes the ganglia daemons need.
package relation

import (
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/naturalsort"
)

var logger = loggo.GetLogger("ganglia.relation")

// Attribute keys published by related units.
const (
	PrivateAddressKey = "private-address"
	DataSourceKey     = "datasource"
)

// SelfGroup is the data source group for the local monitor daemon.
const SelfGroup = "self"

// Reader gives live access to relation membership and settings.
type Reader interface {
	RelationIds(name string) ([]string, error)
	RelatedUnits(relationID string) ([]string, error)
	RelationGet(relationID, unit, key string) (string, bool, error)
}

// Unit is a remote unit seen through one relation.
type Unit struct {
	Name       string
	RelationID string

	reader Reader
}

// Application returns the name of the application the unit belongs to:
// everything before the first "/" of the unit name.
func (u Unit) Application() (string, error) {
	application, _, ok := strings.Cut(u.Name, "/")
	if !ok || application == "" {
		return "", errors.NotValidf("relation %s: unit name %q", u.RelationID, u.Name)
	}
	return application, nil
}

// Attribute returns the value of key published by the unit. The boolean
// result is false when the unit has not published it.
func (u Unit) Attribute(key string) (string, bool, error) {
	value, ok, err := u.reader.RelationGet(u.RelationID, u.Name, key)
	return value, ok, errors.Trace(err)
}

// PrivateAddress returns the unit's private-address, if published.
func (u Unit) PrivateAddress() (string, bool, error) {
	return u.Attribute(PrivateAddressKey)
}

// IsDataSource reports whether the unit published datasource=true.
// Only the exact string "true" counts.
func (u Unit) IsDataSource() (bool, error) {
	value, ok, err := u.Attribute(DataSourceKey)
	if err != nil {
		return false, errors.Trace(err)
	}
	return ok && value == "true", nil
}

// Units returns the units related over every relation on the named
// endpoint. Units of one relation are ordered naturally by name.
func Units(reader Reader, relationName string) ([]Unit, error) {
	ids, err := reader.RelationIds(relationName)
	if err != nil {
		return nil, errors.Annotatef(err, "listing %q relations", relationName)
	}
	var units []Unit
	for _, id := range ids {
		related, err := reader.RelatedUnits(id)
		if err != nil {
			return nil, errors.Annotatef(err, "listing units of %s", id)
		}
		naturalsort.Sort(related)
		for _, name := range related {
			units = append(units, Unit{Name: name, RelationID: id, reader: reader})
		}
	}
	return units, nil
}

// DataSources maps a data source group to the addresses gmetad polls for
// it.
type DataSources map[string][]string

// NewDataSources returns data sources holding only the local group.
func NewDataSources() DataSources {
	return DataSources{SelfGroup: {"localhost"}}
}

// Add appends address to group.
func (d DataSources) Add(group, address string) {
	d[group] = append(d[group], address)
}

// CollectDataSources returns the local group plus one group per
// application with units that published datasource=true on the named
// relation.
func CollectDataSources(reader Reader, relationName string) (DataSources, error) {
	units, err := Units(reader, relationName)
	if err != nil {
		return nil, errors.Trace(err)
	}
	sources := NewDataSources()
	for _, unit := range units {
		isSource, err := unit.IsDataSource()
		if err != nil {
			return nil, errors.Trace(err)
		}
		if !isSource {
			continue
		}
		address, ok, err := unit.PrivateAddress()
		if err != nil {
			return nil, errors.Trace(err)
		}
		if !ok {
			logger.Debugf("data source %s has no %s yet", unit.Name, PrivateAddressKey)
			continue
		}
		group, err := unit.Application()
		if err != nil {
			return nil, errors.Trace(err)
		}
		sources.Add(group, address)
	}
	return sources, nil
}

// CollectAddresses returns the private addresses of all units related
// over the named relation.
func CollectAddresses(reader Reader, relationName string) ([]string, error) {
	units, err := Units(reader, relationName)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var addresses []string
	for _, unit := range units {
		address, ok, err := unit.PrivateAddress()
		if err != nil {
			return nil, errors.Trace(err)
		}
		if !ok {
			continue
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}
