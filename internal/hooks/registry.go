// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package hooks maps hook names to the functions that handle them.
package hooks

import (
	"context"
	"fmt"
	"sort"

	"github.com/juju/errors"
)

// HookFunc handles one hook invocation.
type HookFunc func(ctx context.Context) error

// UnregisteredError is returned when no handler exists for a hook.
type UnregisteredError struct {
	Name string
}

// Error implements error.
func (e *UnregisteredError) Error() string {
	return fmt.Sprintf("no handler registered for hook %q", e.Name)
}

// IsUnregistered reports whether err was caused by an unknown hook name.
func IsUnregistered(err error) bool {
	_, ok := errors.Cause(err).(*UnregisteredError)
	return ok
}

// Registry holds the handler for each hook name.
type Registry struct {
	handlers map[string]HookFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]HookFunc)}
}

// Register sets fn as the handler of each named hook.
func (r *Registry) Register(fn HookFunc, names ...string) error {
	if fn == nil {
		return errors.NotValidf("nil handler")
	}
	for _, name := range names {
		if name == "" {
			return errors.NotValidf("empty hook name")
		}
		if _, ok := r.handlers[name]; ok {
			return errors.AlreadyExistsf("handler for hook %q", name)
		}
	}
	for _, name := range names {
		r.handlers[name] = fn
	}
	return nil
}

// Names returns the registered hook names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the handler registered for name.
func (r *Registry) Execute(ctx context.Context, name string) error {
	fn, ok := r.handlers[name]
	if !ok {
		return &UnregisteredError{Name: name}
	}
	return errors.Annotatef(fn(ctx), "running %s hook", name)
}
