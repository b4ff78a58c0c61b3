// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package service

import (
	"context"
	"os"
	"sort"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/utils/v4"
)

// RestartMap maps a configuration file to the services reading it.
type RestartMap map[string][]string

// Restarter restarts services.
type Restarter interface {
	Restart(ctx context.Context, name string) error
}

func fileHash(path string) (string, error) {
	digest, _, err := utils.ReadFileSHA256(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	return digest, errors.Annotatef(err, "hashing %s", path)
}

func snapshot(paths []string) (map[string]string, error) {
	hashes := make(map[string]string, len(paths))
	for _, path := range paths {
		digest, err := fileHash(path)
		if err != nil {
			return nil, errors.Trace(err)
		}
		hashes[path] = digest
	}
	return hashes, nil
}

// RestartOnChange runs fn, then restarts the services of every file in
// restartMap whose content fn changed. Each service restarts at most once,
// in name order. Nothing is restarted if fn fails.
func RestartOnChange(ctx context.Context, restartMap RestartMap, restarter Restarter, fn func() error) error {
	paths := make([]string, 0, len(restartMap))
	for path := range restartMap {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	before, err := snapshot(paths)
	if err != nil {
		return errors.Trace(err)
	}
	if err := fn(); err != nil {
		return errors.Trace(err)
	}
	after, err := snapshot(paths)
	if err != nil {
		return errors.Trace(err)
	}

	restart := set.NewStrings()
	for _, path := range paths {
		if before[path] != after[path] {
			logger.Debugf("%s changed", path)
			restart = restart.Union(set.NewStrings(restartMap[path]...))
		}
	}
	for _, name := range restart.SortedValues() {
		if err := restarter.Restart(ctx, name); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}
