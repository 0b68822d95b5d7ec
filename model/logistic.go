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
	"math"

	"github.com/descent-io/descent/base"
)

// LogisticRegression classifies points of the plane by which side of the
// line a·x + b·y = 0 they fall on. The decision score of a point is
// z = a·x + b·y and the probability of class 1 is σ(z).
type LogisticRegression struct {
	trueParams Parameters
}

// Cluster centers of the generated classes.
var (
	clusterNegative = [2]float64{-0.8, -0.5}
	clusterPositive = [2]float64{0.8, 0.5}
)

// bceEpsilon clamps probabilities before the log in the cross-entropy.
const bceEpsilon = 1e-7

// NewLogisticRegression creates a LogisticRegression problem.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{trueParams: Parameters{A: 1.6, B: 1}}
}

func (lr *LogisticRegression) Type() ProblemType {
	return Logistic
}

func (lr *LogisticRegression) TrueParameters() Parameters {
	return lr.trueParams
}

// GenerateData draws two Gaussian clusters around fixed opposite centers
// with spread noiseLevel. Labels follow cluster membership, never the
// decision boundary.
func (lr *LogisticRegression) GenerateData(rng base.RandomGenerator, numPoints int, trainRatio, noiseLevel float64) []DataPoint {
	numPoints, trainRatio, noiseLevel = clampGeneratorArgs(numPoints, trainRatio, noiseLevel)
	points := make([]DataPoint, numPoints)
	xs := rng.NormalVector(numPoints, 0, noiseLevel)
	ys := rng.NormalVector(numPoints, 0, noiseLevel)
	for i := range points {
		center, label := clusterNegative, 0
		if i >= numPoints/2 {
			center, label = clusterPositive, 1
		}
		points[i] = DataPoint{
			X:     center[0] + xs[i],
			Y:     center[1] + ys[i],
			Label: label,
		}
	}
	markSplit(rng, points, trainRatio)
	return points
}

// Predict returns the y-value of the decision boundary at x (-a·x/b), not
// a probability. Callers draw the boundary line with it. NaN when b is
// zero: the boundary is vertical and has no y-value, so renderers must
// skip the line.
func (lr *LogisticRegression) Predict(x float64, params Parameters) float64 {
	if params.B == 0 {
		return math.NaN()
	}
	return -params.A * x / params.B
}

// Probability returns σ(a·x + b·y), the probability of class 1 at a point.
func (lr *LogisticRegression) Probability(x, y float64, params Parameters) float64 {
	return sigmoid(params.A*x + params.B*y)
}

// Loss returns the mean binary cross-entropy over data, each probability
// clamped to [ε, 1−ε] before the log.
func (lr *LogisticRegression) Loss(data []DataPoint, params Parameters) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range data {
		prob := base.Clip(sigmoid(params.A*p.X+params.B*p.Y), bceEpsilon, 1-bceEpsilon)
		if p.Label == 1 {
			sum += -math.Log(prob)
		} else {
			sum += -math.Log(1 - prob)
		}
	}
	return sum / float64(len(data))
}

// Gradient returns the exact derivative of the cross-entropy:
// ∂L/∂a = mean (σ(z)−label)·x, ∂L/∂b = mean (σ(z)−label)·y.
func (lr *LogisticRegression) Gradient(data []DataPoint, params Parameters) Parameters {
	if len(data) == 0 {
		return Parameters{}
	}
	var ga, gb float64
	for _, p := range data {
		residual := sigmoid(params.A*p.X+params.B*p.Y) - float64(p.Label)
		ga += residual * p.X
		gb += residual * p.Y
	}
	n := float64(len(data))
	return Parameters{A: ga / n, B: gb / n}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
