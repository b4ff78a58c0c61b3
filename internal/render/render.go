// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package render produces daemon configuration files from the charm's
// templates.
package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("ganglia.render")

// TemplatesDir is the directory, relative to the charm, holding templates.
const TemplatesDir = "templates"

// Context holds the values available to a template, keyed by variable
// name.
type Context map[string]interface{}

var funcs = template.FuncMap{
	"join": func(values []string, sep string) string {
		return strings.Join(values, sep)
	},
}

// Renderer renders templates found in Dir.
type Renderer struct {
	Dir string
}

// NewRenderer returns a Renderer for the templates of the charm in
// charmDir.
func NewRenderer(charmDir string) *Renderer {
	return &Renderer{Dir: filepath.Join(charmDir, TemplatesDir)}
}

// Render executes the named template against ctx.
func (r *Renderer) Render(name string, ctx Context) ([]byte, error) {
	path := filepath.Join(r.Dir, name)
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading template %q", name)
	}
	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(source))
	if err != nil {
		return nil, errors.Annotatef(err, "parsing template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}(ctx)); err != nil {
		return nil, errors.Annotatef(err, "rendering template %q", name)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the named template and writes the result to path.
// The file is truncated and rewritten in place.
func (r *Renderer) WriteFile(path, name string, ctx Context) error {
	data, err := r.Render(name, ctx)
	if err != nil {
		return errors.Trace(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Trace(err)
	}
	logger.Debugf("writing %s from template %q", path, name)
	return errors.Trace(os.WriteFile(path, data, 0644))
}
