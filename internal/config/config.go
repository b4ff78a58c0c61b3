// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config reads the charm's options.
package config

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/yaml.v2"
)

// Option names declared in config.yaml.
const (
	GridNameKey        = "gridname"
	DeadHostTimeoutKey = "dead_host_timeout"
)

// FileName is the charm's option declaration file.
const FileName = "config.yaml"

// Config holds the charm options used by the hooks.
type Config struct {
	// GridName names the grid gmetad reports to the web frontend.
	GridName string

	// DeadHostTimeout is the number of seconds after which gmond forgets
	// a host that stopped reporting.
	DeadHostTimeout int
}

// Getter returns every charm option, including unset ones.
type Getter interface {
	ConfigGet() (map[string]interface{}, error)
}

var fields = schema.Fields{
	GridNameKey:        schema.String(),
	DeadHostTimeoutKey: schema.ForceInt(),
}

var builtinDefaults = schema.Defaults{
	GridNameKey:        "ganglia",
	DeadHostTimeoutKey: 3600,
}

type optionsDoc struct {
	Options map[string]struct {
		Type        string      `yaml:"type"`
		Default     interface{} `yaml:"default"`
		Description string      `yaml:"description"`
	} `yaml:"options"`
}

// Defaults returns the option defaults declared in the charm's
// config.yaml, falling back to built-in values for anything it does not
// declare. A missing config.yaml is not an error.
func Defaults(charmDir string) (schema.Defaults, error) {
	defaults := make(schema.Defaults, len(builtinDefaults))
	for k, v := range builtinDefaults {
		defaults[k] = v
	}
	data, err := os.ReadFile(filepath.Join(charmDir, FileName))
	if os.IsNotExist(err) {
		return defaults, nil
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	var doc optionsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Annotatef(err, "parsing %s", FileName)
	}
	for name, option := range doc.Options {
		if _, ok := fields[name]; ok && option.Default != nil {
			defaults[name] = option.Default
		}
	}
	return defaults, nil
}

// Read fetches the charm options and coerces them to a Config. Options
// without a value take their defaults from the charm in charmDir.
func Read(getter Getter, charmDir string) (Config, error) {
	defaults, err := Defaults(charmDir)
	if err != nil {
		return Config{}, errors.Trace(err)
	}
	settings, err := getter.ConfigGet()
	if err != nil {
		return Config{}, errors.Annotate(err, "reading charm config")
	}
	values := make(map[string]interface{})
	for k, v := range settings {
		if _, ok := fields[k]; ok && v != nil {
			values[k] = v
		}
	}
	coerced, err := schema.FieldMap(fields, defaults).Coerce(values, nil)
	if err != nil {
		return Config{}, errors.NewNotValid(err, "charm config")
	}
	m := coerced.(map[string]interface{})
	gridName, _ := m[GridNameKey].(string)
	cfg := Config{
		GridName:        gridName,
		DeadHostTimeout: toInt(m[DeadHostTimeoutKey]),
	}
	if cfg.DeadHostTimeout < 0 {
		return Config{}, errors.NotValidf("%s %d", DeadHostTimeoutKey, cfg.DeadHostTimeout)
	}
	return cfg, nil
}

func toInt(v interface{}) int {
	switch v := v.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
