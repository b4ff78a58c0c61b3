// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package hookenv

import (
	"os"

	"github.com/juju/errors"
	"github.com/juju/names/v5"
)

// Environment variables set by the unit agent when it runs a hook.
const (
	EnvUnitName       = "JUJU_UNIT_NAME"
	EnvCharmDir       = "JUJU_CHARM_DIR"
	EnvLegacyCharmDir = "CHARM_DIR"
	EnvHookName       = "JUJU_HOOK_NAME"
	EnvRelation       = "JUJU_RELATION"
	EnvRelationID     = "JUJU_RELATION_ID"
	EnvRemoteUnit     = "JUJU_REMOTE_UNIT"
	EnvContextID      = "JUJU_CONTEXT_ID"
	EnvLoggingConfig  = "JUJU_LOGGING_CONFIG"
)

// Environ describes the hook context a process was started in.
type Environ struct {
	UnitName      string
	CharmDir      string
	HookName      string
	RelationName  string
	RelationID    string
	RemoteUnit    string
	ContextID     string
	LoggingConfig string
}

// NewEnviron reads the hook context using getenv.
func NewEnviron(getenv func(string) string) Environ {
	charmDir := getenv(EnvCharmDir)
	if charmDir == "" {
		charmDir = getenv(EnvLegacyCharmDir)
	}
	return Environ{
		UnitName:      getenv(EnvUnitName),
		CharmDir:      charmDir,
		HookName:      getenv(EnvHookName),
		RelationName:  getenv(EnvRelation),
		RelationID:    getenv(EnvRelationID),
		RemoteUnit:    getenv(EnvRemoteUnit),
		ContextID:     getenv(EnvContextID),
		LoggingConfig: getenv(EnvLoggingConfig),
	}
}

// OSEnviron reads the hook context from the process environment.
func OSEnviron() Environ {
	return NewEnviron(os.Getenv)
}

// InHookContext reports whether hook tools can be called.
func (e Environ) InHookContext() bool {
	return e.ContextID != ""
}

// ServiceName returns the name of the application the local unit
// belongs to.
func (e Environ) ServiceName() (string, error) {
	if e.UnitName == "" {
		return "", errors.NotFoundf("%s", EnvUnitName)
	}
	if !names.IsValidUnit(e.UnitName) {
		return "", errors.NotValidf("unit name %q", e.UnitName)
	}
	application, err := names.UnitApplication(e.UnitName)
	return application, errors.Trace(err)
}
