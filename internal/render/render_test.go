// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package render_test

import (
	"os"
	"path/filepath"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/charm-ganglia/internal/relation"
	"github.com/juju/charm-ganglia/internal/render"
)

type renderSuite struct {
	testing.IsolationSuite

	renderer *render.Renderer
}

var _ = gc.Suite(&renderSuite{})

func (s *renderSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	charmDir := c.MkDir()
	s.renderer = render.NewRenderer(charmDir)
	err := os.MkdirAll(s.renderer.Dir, 0755)
	c.Assert(err, jc.ErrorIsNil)
}

func (s *renderSuite) writeTemplate(c *gc.C, name, content string) {
	err := os.WriteFile(filepath.Join(s.renderer.Dir, name), []byte(content), 0644)
	c.Assert(err, jc.ErrorIsNil)
}

func (s *renderSuite) TestRenderSortsGroups(c *gc.C) {
	s.writeTemplate(c, "sources", `{{ range $g, $h := .data_sources }}{{ $g }}={{ join $h "," }};{{ end }}`)

	out, err := s.renderer.Render("sources", render.Context{
		"data_sources": relation.DataSources{
			"zeta": {"10.0.0.9"},
			"self": {"localhost"},
			"alfa": {"10.0.0.1", "10.0.0.2"},
		},
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(out), gc.Equals, "alfa=10.0.0.1,10.0.0.2;self=localhost;zeta=10.0.0.9;")
}

func (s *renderSuite) TestRenderMissingKey(c *gc.C) {
	s.writeTemplate(c, "grid", `{{ .gridname }}`)

	_, err := s.renderer.Render("grid", render.Context{})
	c.Assert(err, gc.ErrorMatches, `rendering template "grid": .*`)
}

func (s *renderSuite) TestRenderMissingTemplate(c *gc.C) {
	_, err := s.renderer.Render("nope", render.Context{})
	c.Assert(err, gc.ErrorMatches, `reading template "nope": .*`)
}

func (s *renderSuite) TestWriteFileOverwrites(c *gc.C) {
	s.writeTemplate(c, "grid", `gridname "{{ .gridname }}"`+"\n")
	target := filepath.Join(c.MkDir(), "etc", "ganglia", "gmetad.conf")

	err := s.renderer.WriteFile(target, "grid", render.Context{"gridname": "a much longer grid name"})
	c.Assert(err, jc.ErrorIsNil)
	err = s.renderer.WriteFile(target, "grid", render.Context{"gridname": "short"})
	c.Assert(err, jc.ErrorIsNil)

	data, err := os.ReadFile(target)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(data), gc.Equals, "gridname \"short\"\n")
}

func (s *renderSuite) TestWriteFileTemplateErrorLeavesTarget(c *gc.C) {
	s.writeTemplate(c, "broken", `{{ .missing }}`)
	target := filepath.Join(c.MkDir(), "gmond.conf")
	err := os.WriteFile(target, []byte("previous"), 0644)
	c.Assert(err, jc.ErrorIsNil)

	err = s.renderer.WriteFile(target, "broken", render.Context{})
	c.Assert(err, gc.NotNil)

	data, err := os.ReadFile(target)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(data), gc.Equals, "previous")
}

// charmTemplatesSuite renders the templates shipped with the charm.
type charmTemplatesSuite struct {
	testing.IsolationSuite

	renderer *render.Renderer
}

var _ = gc.Suite(&charmTemplatesSuite{})

func (s *charmTemplatesSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.renderer = render.NewRenderer(filepath.Join("..", ".."))
}

func (s *charmTemplatesSuite) TestGmetad(c *gc.C) {
	ctx := render.Context{
		"data_sources": relation.DataSources{
			"self":     {"localhost"},
			"serviceA": {"10.0.0.5", "10.0.0.6"},
		},
		"gridname": "production",
	}
	out, err := s.renderer.Render("gmetad.conf", ctx)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(out), jc.Contains, "\n\ndata_source \"self\" localhost\n"+
		"data_source \"serviceA\" 10.0.0.5 10.0.0.6\n\n"+
		"gridname \"production\"\n")

	again, err := s.renderer.Render("gmetad.conf", ctx)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(again, jc.DeepEquals, out)
}

func (s *charmTemplatesSuite) TestGmond(c *gc.C) {
	out, err := s.renderer.Render("gmond.conf", render.Context{
		"service_name":      "hadoop-slave",
		"masters":           []string{"10.1.0.1", "10.1.0.2"},
		"dead_host_timeout": 600,
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(out), jc.Contains, "  host_dmax = 600\n")
	c.Check(string(out), jc.Contains, "  name = \"hadoop-slave\"\n")
	c.Check(string(out), jc.Contains, "udp_send_channel {\n  host = 10.1.0.1\n")
	c.Check(string(out), jc.Contains, "udp_send_channel {\n  host = 10.1.0.2\n")
}

func (s *charmTemplatesSuite) TestGmondNoMasters(c *gc.C) {
	out, err := s.renderer.Render("gmond.conf", render.Context{
		"service_name":      "ganglia",
		"masters":           []string(nil),
		"dead_host_timeout": 3600,
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(out), gc.Not(jc.Contains), "udp_send_channel")
}
