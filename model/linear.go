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

package model

import (
	"github.com/descent-io/descent/base"
)

// LinearRegression fits y = a·x + b by mean squared error.
type LinearRegression struct {
	trueParams Parameters
}

// NewLinearRegression creates a LinearRegression problem.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{trueParams: Parameters{A: 2, B: 1}}
}

func (lr *LinearRegression) Type() ProblemType {
	return Linear
}

func (lr *LinearRegression) TrueParameters() Parameters {
	return lr.trueParams
}

func (lr *LinearRegression) GenerateData(rng base.RandomGenerator, numPoints int, trainRatio, noiseLevel float64) []DataPoint {
	numPoints, trainRatio, noiseLevel = clampGeneratorArgs(numPoints, trainRatio, noiseLevel)
	xs := sampleInputs(rng, numPoints, inputMin, inputMax)
	points := make([]DataPoint, numPoints)
	for i, x := range xs {
		points[i] = DataPoint{
			X: x,
			Y: lr.trueParams.A*x + lr.trueParams.B + rng.Noise(noiseLevel),
		}
	}
	markSplit(rng, points, trainRatio)
	return points
}

// Predict returns a·x + b.
func (lr *LinearRegression) Predict(x float64, params Parameters) float64 {
	return params.A*x + params.B
}

// Loss returns the mean squared error over data.
func (lr *LinearRegression) Loss(data []DataPoint, params Parameters) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range data {
		diff := lr.Predict(p.X, params) - p.Y
		sum += diff * diff
	}
	return sum / float64(len(data))
}

// Gradient returns the exact derivative of the mean squared error:
// ∂L/∂a = mean 2·(ŷ−y)·x, ∂L/∂b = mean 2·(ŷ−y).
func (lr *LinearRegression) Gradient(data []DataPoint, params Parameters) Parameters {
	if len(data) == 0 {
		return Parameters{}
	}
	var ga, gb float64
	for _, p := range data {
		diff := lr.Predict(p.X, params) - p.Y
		ga += 2 * diff * p.X
		gb += 2 * diff
	}
	n := float64(len(data))
	return Parameters{A: ga / n, B: gb / n}
}
