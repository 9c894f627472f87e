// Package plotting renders simulated trajectories to image files.
package plotting

import (
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/config"
	"github.com/EtherexStudios/FRC-PTP-GUI-sub000/simulation"
)

// DefaultFootprintEvery is the number of samples between drawn robot footprints.
const DefaultFootprintEvery = 25

var (
	trailColor     = color.RGBA{R: 30, G: 110, B: 220, A: 255}
	anchorColor    = color.RGBA{R: 220, G: 60, B: 40, A: 255}
	footprintColor = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

// Options controls what Trail draws.
type Options struct {
	Title string
	// Anchors are drawn as markers, usually the path's translation targets.
	Anchors []r2.Point
	// FootprintEvery is the sample spacing of robot footprints. Zero uses
	// DefaultFootprintEvery; negative draws none.
	FootprintEvery int
}

// Trail plots the path the robot followed in res, with robot outlines sized by cfg.
func Trail(res *simulation.Result, cfg *config.Config, opts Options) (*plot.Plot, error) {
	if res.Empty() {
		return nil, errors.New("cannot plot an empty result")
	}
	if cfg == nil {
		cfg = config.Default()
	}
	every := opts.FootprintEvery
	if every == 0 {
		every = DefaultFootprintEvery
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(plotter.NewGrid())

	if every > 0 {
		for i := 0; i < res.Len(); i += every {
			poly, err := plotter.NewPolygon(toXYs(Footprint(res.Poses[i], cfg.RobotLengthMeters, cfg.RobotWidthMeters)))
			if err != nil {
				return nil, errors.Wrapf(err, "footprint at sample %d", i)
			}
			poly.Color = nil
			poly.LineStyle.Color = footprintColor
			poly.LineStyle.Width = vg.Points(0.5)
			p.Add(poly)
		}
	}

	line, err := plotter.NewLine(toXYs(res.Trail))
	if err != nil {
		return nil, errors.Wrap(err, "trail")
	}
	line.Color = trailColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("trail", line)

	if len(opts.Anchors) > 0 {
		scatter, err := plotter.NewScatter(toXYs(opts.Anchors))
		if err != nil {
			return nil, errors.Wrap(err, "anchors")
		}
		scatter.GlyphStyle.Color = anchorColor
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add("anchors", scatter)
	}
	return p, nil
}

// Footprint returns the corners of a length by width robot at pose, counterclockwise
// starting front left. Length runs along the heading.
func Footprint(pose simulation.Pose, length, width float64) []r2.Point {
	sin, cos := math.Sincos(pose.Heading)
	hl, hw := length/2, width/2
	return lo.Map([]r2.Point{{X: hl, Y: hw}, {X: -hl, Y: hw}, {X: -hl, Y: -hw}, {X: hl, Y: -hw}},
		func(c r2.Point, _ int) r2.Point {
			return r2.Point{X: pose.X + c.X*cos - c.Y*sin, Y: pose.Y + c.X*sin + c.Y*cos}
		})
}

// Save writes p to file, choosing the format from the file's extension.
func Save(p *plot.Plot, file string) error {
	if err := p.Save(6*vg.Inch, 6*vg.Inch, file); err != nil {
		return errors.Wrapf(err, "saving plot to %q", file)
	}
	return nil
}

func toXYs(points []r2.Point) plotter.XYs {
	return lo.Map(points, func(pt r2.Point, _ int) plotter.XY { return plotter.XY{X: pt.X, Y: pt.Y} })
}
