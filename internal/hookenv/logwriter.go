// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package hookenv

import (
	"fmt"

	"github.com/juju/loggo"
)

// UnitLogger writes messages to the unit log.
type UnitLogger interface {
	Log(level loggo.Level, message string) error
}

// logWriter forwards loggo entries to juju-log. Entries that cannot be
// forwarded go to fallback.
type logWriter struct {
	unitLog  UnitLogger
	fallback loggo.Writer
	writing  bool
}

// NewLogWriter returns a loggo.Writer that sends entries to the unit log.
func NewLogWriter(unitLog UnitLogger, fallback loggo.Writer) loggo.Writer {
	return &logWriter{unitLog: unitLog, fallback: fallback}
}

// Write implements loggo.Writer.
func (w *logWriter) Write(entry loggo.Entry) {
	// Running juju-log may itself log.
	if w.writing {
		w.fallback.Write(entry)
		return
	}
	w.writing = true
	defer func() { w.writing = false }()

	message := fmt.Sprintf("%s: %s", entry.Module, entry.Message)
	if err := w.unitLog.Log(entry.Level, message); err != nil {
		w.fallback.Write(entry)
	}
}
