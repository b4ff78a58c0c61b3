// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package hookenv is the charm's client for the hook tools provided by the
// unit agent while a hook runs.
package hookenv

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v2"

	"github.com/juju/charm-ganglia/internal/runner"
)

// Status is a workload status accepted by status-set.
type Status string

const (
	StatusMaintenance Status = "maintenance"
	StatusBlocked     Status = "blocked"
	StatusActive      Status = "active"
)

// relation-get exits with this code when the requested unit or relation
// is unknown to the agent.
const relationGetNotFoundCode = 2

// Tools runs hook tools through a CommandRunner.
type Tools struct {
	runner runner.CommandRunner
}

// NewTools returns a Tools that uses r to run hook tools.
func NewTools(r runner.CommandRunner) *Tools {
	return &Tools{runner: r}
}

func (t *Tools) run(args ...string) ([]byte, error) {
	out, err := runner.Run(t.runner, nil, args...)
	return out, errors.Trace(err)
}

func (t *Tools) runJSON(result interface{}, args ...string) error {
	out, err := t.run(args...)
	if err != nil {
		return errors.Trace(err)
	}
	if len(strings.TrimSpace(string(out))) == 0 {
		return nil
	}
	if err := json.Unmarshal(out, result); err != nil {
		return errors.Annotatef(err, "cannot parse %s output", args[0])
	}
	return nil
}

// RelationIds returns the ids of all relations established on the named
// endpoint, sorted.
func (t *Tools) RelationIds(name string) ([]string, error) {
	var ids []string
	if err := t.runJSON(&ids, "relation-ids", "--format=json", name); err != nil {
		return nil, errors.Trace(err)
	}
	sort.Strings(ids)
	return ids, nil
}

// RelatedUnits returns the names of the remote units participating in
// the given relation.
func (t *Tools) RelatedUnits(relationID string) ([]string, error) {
	var units []string
	if err := t.runJSON(&units, "relation-list", "--format=json", "-r", relationID); err != nil {
		return nil, errors.Trace(err)
	}
	return units, nil
}

// RelationGet returns the value of key published by unit on the given
// relation. The boolean result is false when the value is absent.
func (t *Tools) RelationGet(relationID, unit, key string) (string, bool, error) {
	var value *string
	err := t.runJSON(&value, "relation-get", "--format=json", "-r", relationID, key, unit)
	if runner.IsExitCode(err, relationGetNotFoundCode) {
		return "", false, nil
	} else if err != nil {
		return "", false, errors.Trace(err)
	}
	if value == nil || *value == "" {
		return "", false, nil
	}
	return *value, true, nil
}

// RelationSet publishes settings for the local unit. An empty
// relationID means the relation of the running hook.
func (t *Tools) RelationSet(relationID string, settings map[string]string) error {
	args := []string{"relation-set"}
	if relationID != "" {
		args = append(args, "-r", relationID)
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, k+"="+settings[k])
	}
	_, err := t.run(args...)
	return errors.Trace(err)
}

// ConfigGet returns every charm option, including those without a value.
func (t *Tools) ConfigGet() (map[string]interface{}, error) {
	out, err := t.run("config-get", "--all", "--format=yaml")
	if err != nil {
		return nil, errors.Trace(err)
	}
	settings := make(map[string]interface{})
	if err := yaml.Unmarshal(out, &settings); err != nil {
		return nil, errors.Annotate(err, "cannot parse config-get output")
	}
	return settings, nil
}

// UnitGet returns a unit attribute such as private-address.
func (t *Tools) UnitGet(key string) (string, error) {
	var value string
	if err := t.runJSON(&value, "unit-get", "--format=json", key); err != nil {
		return "", errors.Trace(err)
	}
	return value, nil
}

// OpenPort opens port for the given protocol on the unit's machine.
func (t *Tools) OpenPort(port int, protocol string) error {
	_, err := t.run("open-port", fmt.Sprintf("%d/%s", port, protocol))
	return errors.Trace(err)
}

// StatusSet sets the unit's workload status.
func (t *Tools) StatusSet(status Status, message string) error {
	_, err := t.run("status-set", string(status), message)
	return errors.Trace(err)
}

// ApplicationVersionSet records the workload version of the application.
func (t *Tools) ApplicationVersionSet(version string) error {
	_, err := t.run("application-version-set", version)
	return errors.Trace(err)
}

// Log writes message to the unit log at level.
func (t *Tools) Log(level loggo.Level, message string) error {
	_, err := t.run("juju-log", "-l", level.String(), message)
	return errors.Trace(err)
}
