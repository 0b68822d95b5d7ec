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

	"github.com/juju/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/descent-io/descent/train"
)

// LossCurves draws the train and test loss of each recorded step.
func LossCurves(points []train.HistoryPoint) (*plot.Plot, error) {
	if len(points) == 0 {
		return nil, errors.New("empty history")
	}
	p := plot.New()
	p.Title.Text = "Loss"
	p.X.Label.Text = "step"
	p.Y.Label.Text = "loss"

	trainLine, err := lossLine(points, func(point train.HistoryPoint) float64 { return point.TrainLoss })
	if err != nil {
		return nil, errors.Trace(err)
	}
	trainLine.Color = color.RGBA{R: 220, G: 60, B: 40, A: 255}
	trainLine.Width = vg.Points(1.5)
	p.Add(trainLine)
	p.Legend.Add("train", trainLine)

	testLine, err := lossLine(points, func(point train.HistoryPoint) float64 { return point.TestLoss })
	if err != nil {
		return nil, errors.Trace(err)
	}
	testLine.Color = color.RGBA{R: 40, G: 90, B: 220, A: 255}
	testLine.Width = vg.Points(1.5)
	testLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(testLine)
	p.Legend.Add("test", testLine)

	p.Legend.Top = true
	return p, nil
}

func lossLine(points []train.HistoryPoint, loss func(train.HistoryPoint) float64) (*plotter.Line, error) {
	xys := make(plotter.XYs, len(points))
	for i, point := range points {
		xys[i] = plotter.XY{X: float64(point.Step), Y: loss(point)}
	}
	line, err := plotter.NewLine(xys)
	return line, errors.Trace(err)
}
