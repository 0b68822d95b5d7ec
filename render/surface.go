// Copyright 2025 descent Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package render draws the loss landscape, the training data and the loss
// curves as static images. The numerical packages expose plain values;
// everything plot-library specific lives here.
package render

import (
	"image/color"

	"github.com/juju/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/descent-io/descent/landscape"
	"github.com/descent-io/descent/model"
)

// arrowLength scales gradient arrows to a fraction of the axis span.
const arrowLength = 0.04

// lossGrid adapts a sampled landscape to the plotter grid interface. Z is
// the log-normalized loss, so the color scale stays legible however steep
// the raw losses are.
type lossGrid struct {
	grid *landscape.Grid
}

func (g lossGrid) Dims() (int, int) {
	return g.grid.Resolution(), g.grid.Resolution()
}

func (g lossGrid) X(c int) float64 {
	return g.grid.AxisA()[c]
}

func (g lossGrid) Y(r int) float64 {
	return g.grid.AxisB()[r]
}

func (g lossGrid) Z(c, r int) float64 {
	return g.grid.Normalized(g.grid.At(c, r).Loss)
}

// LandscapeOptions selects the optional overlays of a landscape plot.
type LandscapeOptions struct {
	NumLevels int
	Arrows    []landscape.Arrow
	Path      []model.Parameters
	Current   *model.Parameters
	Target    *model.Parameters
}

// Landscape draws a heatmap of the loss over the parameter plane, with
// contour lines and, when requested, the gradient arrow field, the descent
// path and markers for the current and true parameters.
func Landscape(grid *landscape.Grid, opts LandscapeOptions) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Loss landscape"
	p.X.Label.Text = "a"
	p.Y.Label.Text = "b"

	heatmap := plotter.NewHeatMap(lossGrid{grid}, moreland.SmoothBlueRed().Palette(255))
	if heatmap.Min == heatmap.Max {
		// flat landscape: keep the palette lookup well defined
		heatmap.Max = heatmap.Min + 1
	}
	p.Add(heatmap)

	if opts.NumLevels > 0 {
		raw := grid.ContourLevels(opts.NumLevels)
		levels := make([]float64, len(raw))
		for i, level := range raw {
			levels[i] = grid.Normalized(level)
		}
		contour := plotter.NewContour(lossGrid{grid}, levels, moreland.SmoothBlueRed().Palette(255))
		p.Add(contour)
	}

	for _, arrow := range opts.Arrows {
		span := grid.Span()
		length := arrowLength * (span.Max - span.Min) * arrow.Magnitude
		segment, err := plotter.NewLine(plotter.XYs{
			{X: arrow.A, Y: arrow.B},
			{X: arrow.A + arrow.DirA*length, Y: arrow.B + arrow.DirB*length},
		})
		if err != nil {
			return nil, errors.Trace(err)
		}
		segment.Color = color.RGBA{R: 255, G: 255, B: 255, A: 160}
		p.Add(segment)
	}

	if len(opts.Path) > 1 {
		xys := make(plotter.XYs, len(opts.Path))
		for i, params := range opts.Path {
			xys[i] = plotter.XY{X: params.A, Y: params.B}
		}
		path, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Trace(err)
		}
		path.Color = color.Black
		path.Width = vg.Points(1.5)
		p.Add(path)
		p.Legend.Add("path", path)
	}

	if opts.Current != nil {
		marker, err := parameterMarker(*opts.Current, color.Black, draw.CircleGlyph{})
		if err != nil {
			return nil, errors.Trace(err)
		}
		p.Add(marker)
		p.Legend.Add("current", marker)
	}
	if opts.Target != nil {
		marker, err := parameterMarker(*opts.Target, color.RGBA{R: 0, G: 160, B: 0, A: 255}, draw.PyramidGlyph{})
		if err != nil {
			return nil, errors.Trace(err)
		}
		p.Add(marker)
		p.Legend.Add("target", marker)
	}
	return p, nil
}

func parameterMarker(params model.Parameters, c color.Color, shape draw.GlyphDrawer) (*plotter.Scatter, error) {
	marker, err := plotter.NewScatter(plotter.XYs{{X: params.A, Y: params.B}})
	if err != nil {
		return nil, errors.Trace(err)
	}
	marker.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(4), Shape: shape}
	return marker, nil
}

// Save writes a plot as a square image. The format follows the file
// extension.
func Save(p *plot.Plot, path string) error {
	return errors.Trace(p.Save(6*vg.Inch, 6*vg.Inch, path))
}
