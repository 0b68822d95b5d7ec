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

package render

import (
	"image/color"
	"math"

	"github.com/juju/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/descent-io/descent/model"
)

// Data draws the dataset together with the fitted and the true model. For
// regression problems the points are split train/test and the model is a
// curve over x; for classification the points are colored by label and the
// model is the decision boundary line, omitted when it is vertical.
func Data(problem model.Problem, data []model.DataPoint, params model.Parameters) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = string(problem.Type())
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if problem.Type() == model.Logistic {
		if err := addLabeledPoints(p, data); err != nil {
			return nil, errors.Trace(err)
		}
	} else if err := addSplitPoints(p, data); err != nil {
		return nil, errors.Trace(err)
	}

	if fitted := modelLine(problem, params); fitted != nil {
		fitted.Color = color.RGBA{R: 220, G: 60, B: 40, A: 255}
		fitted.Width = vg.Points(1.5)
		p.Add(fitted)
		p.Legend.Add("fitted", fitted)
	}
	if truth := modelLine(problem, problem.TrueParameters()); truth != nil {
		truth.Color = color.RGBA{R: 0, G: 160, B: 0, A: 255}
		truth.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(truth)
		p.Legend.Add("truth", truth)
	}
	p.Legend.Top = true
	return p, nil
}

// modelLine returns the model as a function plotter, or nil when the model
// has no finite curve (a vertical decision boundary).
func modelLine(problem model.Problem, params model.Parameters) *plotter.Function {
	if math.IsNaN(problem.Predict(0, params)) {
		return nil
	}
	return plotter.NewFunction(func(x float64) float64 {
		return problem.Predict(x, params)
	})
}

func addSplitPoints(p *plot.Plot, data []model.DataPoint) error {
	training, err := pointScatter(model.TrainingPoints(data))
	if err != nil {
		return errors.Trace(err)
	}
	training.GlyphStyle = draw.GlyphStyle{
		Color:  color.RGBA{R: 40, G: 90, B: 220, A: 255},
		Radius: vg.Points(2.5),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(training)
	p.Legend.Add("train", training)

	test, err := pointScatter(model.TestPoints(data))
	if err != nil {
		return errors.Trace(err)
	}
	test.GlyphStyle = draw.GlyphStyle{
		Color:  color.RGBA{R: 150, G: 150, B: 150, A: 255},
		Radius: vg.Points(2.5),
		Shape:  draw.RingGlyph{},
	}
	p.Add(test)
	p.Legend.Add("test", test)
	return nil
}

func addLabeledPoints(p *plot.Plot, data []model.DataPoint) error {
	for label, style := range map[int]draw.GlyphStyle{
		0: {Color: color.RGBA{R: 40, G: 90, B: 220, A: 255}, Radius: vg.Points(2.5), Shape: draw.CircleGlyph{}},
		1: {Color: color.RGBA{R: 220, G: 60, B: 40, A: 255}, Radius: vg.Points(2.5), Shape: draw.PyramidGlyph{}},
	} {
		class := make([]model.DataPoint, 0, len(data))
		for _, point := range data {
			if point.Label == label {
				class = append(class, point)
			}
		}
		scatter, err := pointScatter(class)
		if err != nil {
			return errors.Trace(err)
		}
		scatter.GlyphStyle = style
		p.Add(scatter)
	}
	return nil
}

func pointScatter(points []model.DataPoint) (*plotter.Scatter, error) {
	xys := make(plotter.XYs, len(points))
	for i, point := range points {
		xys[i] = plotter.XY{X: point.X, Y: point.Y}
	}
	scatter, err := plotter.NewScatter(xys)
	return scatter, errors.Trace(err)
}
