// Package gcode turns a packed layout into per-page laser G-code, and can
// parse the generated code back into structured moves for validation and
// job-time estimation.
package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/laserflat/internal/geom"
	"github.com/piwi3910/laserflat/internal/model"
	"github.com/piwi3910/laserflat/internal/pack"
	"github.com/piwi3910/laserflat/internal/trace"
)

// Generator produces laser G-code from a packed layout.
type Generator struct {
	Settings model.LaserSettings
	profile  model.LaserProfile
}

func New(settings model.LaserSettings) *Generator {
	return &Generator{
		Settings: settings,
		profile:  model.GetLaserProfile(settings.Profile),
	}
}

// GenerateAll produces one G-code program per page. Coordinates are local to
// each page, origin at the page's bottom-left corner.
func (g *Generator) GenerateAll(shapes []*trace.MeshBoundary, opts model.Options, result pack.Result) ([]string, error) {
	if err := g.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid laser settings: %w", err)
	}
	if !result.IsValid() {
		return nil, fmt.Errorf("nothing was packed")
	}

	programs := make([]string, 0, result.NumPages)
	for page := 0; page < result.NumPages; page++ {
		programs = append(programs, g.generatePage(shapes, opts, page))
	}
	return programs, nil
}

func (g *Generator) generatePage(shapes []*trace.MeshBoundary, opts model.Options, page int) string {
	var b strings.Builder

	g.writeHeader(&b, shapes, opts, page)

	// Engrave everything before cutting so no shape drops free with marks
	// still pending.
	for _, edgeType := range [...]trace.EdgeType{trace.EdgeEngrave, trace.EdgeCut} {
		for _, shape := range shapes {
			if shape.PageNum != page || shape.IsEmpty() {
				continue
			}
			g.writeShapeChains(&b, shape, opts.PageOffset(page), edgeType)
		}
	}

	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, shapes []*trace.MeshBoundary, opts model.Options, page int) {
	p := g.profile

	count := 0
	for _, shape := range shapes {
		if shape.PageNum == page && !shape.IsEmpty() {
			count++
		}
	}

	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" laserflat - Page %d\n", page+1))
	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" Material: %.1f x %.1f mm\n", opts.MaterialWidth, opts.MaterialLength))
	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" Shapes: %d\n", count))
	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" Cut: %.0f mm/min S%d, Engrave: %.0f mm/min S%d\n",
		g.Settings.CutSpeed, g.Settings.CutPower,
		g.Settings.EngraveSpeed, g.Settings.EngravePower))
	b.WriteString(p.CommentPrefix)
	b.WriteString(fmt.Sprintf(" Profile: %s\n", p.Name))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(p.CommentPrefix + " === Job complete ===\n")
	for _, code := range p.EndCode {
		b.WriteString(code + "\n")
	}
}

// writeShapeChains emits all of one shape's chains of the given type, in the
// page-local frame.
func (g *Generator) writeShapeChains(b *strings.Builder, shape *trace.MeshBoundary, pageShift float64, edgeType trace.EdgeType) {
	chains := shape.Polygons[edgeType]
	if len(chains) == 0 {
		return
	}

	feed := g.Settings.EngraveSpeed
	power := g.Settings.EngravePower
	passes := 1
	if edgeType == trace.EdgeCut {
		feed = g.Settings.CutSpeed
		power = g.Settings.CutPower
		passes = g.Settings.CutPasses
	}

	b.WriteString(g.comment(fmt.Sprintf("--- %s: %s%s ---",
		shape.Name, edgeType, rotatedStr(shape.Rotation != 0))))

	for _, chain := range chains {
		points := chain.Points()
		if len(points) < 2 {
			continue
		}

		placed := make([]geom.Vec2, len(points))
		for i, pt := range points {
			q := shape.TransformPoint(pt)
			placed[i] = geom.Vec2{X: q.X - pageShift, Y: q.Y}
		}

		for pass := 1; pass <= passes; pass++ {
			if passes > 1 {
				b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d", pass, passes)))
			}

			b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.RapidMove,
				g.format(placed[0].X), g.format(placed[0].Y)))
			b.WriteString(fmt.Sprintf(g.profile.LaserOn+"\n", power))

			for i := 1; i < len(placed); i++ {
				b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", g.profile.FeedMove,
					g.format(placed[i].X), g.format(placed[i].Y), g.format(feed)))
			}
			if chain.IsClosed() {
				b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", g.profile.FeedMove,
					g.format(placed[0].X), g.format(placed[0].Y), g.format(feed)))
			}

			b.WriteString(g.profile.LaserOff + "\n")
		}
	}

	b.WriteString("\n")
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}

func rotatedStr(r bool) string {
	if r {
		return " [rotated]"
	}
	return ""
}
