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

// Package model defines the problem variants of the descent playground:
// three fixed two-parameter models, each bundling synthetic data
// generation, prediction, scalar loss and the analytic gradient of that
// loss. The gradient of every variant is the exact derivative of its loss,
// which is the correctness contract the test suite verifies by finite
// differences.
package model

import (
	"fmt"

	"github.com/descent-io/descent/base"
)

// ProblemType is the tag of a problem variant. The set is closed.
type ProblemType string

const (
	Linear     ProblemType = "linear"
	Logistic   ProblemType = "logistic"
	Polynomial ProblemType = "polynomial"
)

// ProblemTypes lists all known problem variants.
var ProblemTypes = []ProblemType{Linear, Logistic, Polynomial}

// Parameters is a point in the two-dimensional parameter space. It is the
// entire optimization state of every problem variant.
type Parameters struct {
	A float64
	B float64
}

// Parameter range used for visualization and random initialization.
const (
	ParameterMin = -5.0
	ParameterMax = 5.0
)

// Problem is the interface of a problem variant. Implementations are
// LinearRegression, LogisticRegression and PolynomialRegression; the set
// is fixed and exhaustively handled.
//
// Loss and Gradient never fail: on an empty dataset they return the
// neutral values 0 and Parameters{} respectively.
type Problem interface {
	// Type returns the variant tag.
	Type() ProblemType
	// TrueParameters returns the ground truth used to generate data.
	TrueParameters() Parameters
	// GenerateData synthesizes numPoints observations. The first
	// floor(numPoints*trainRatio) points are marked as training before the
	// slice order is shuffled. Higher noiseLevel produces larger expected
	// scatter; zero noise produces data the true parameters fit exactly.
	GenerateData(rng base.RandomGenerator, numPoints int, trainRatio, noiseLevel float64) []DataPoint
	// Predict returns the model output at x. For LogisticRegression the
	// meaning differs: see its documentation.
	Predict(x float64, params Parameters) float64
	// Loss returns the non-negative scalar loss over data.
	Loss(data []DataPoint, params Parameters) float64
	// Gradient returns the partial derivatives of Loss w.r.t. A and B.
	Gradient(data []DataPoint, params Parameters) Parameters
}

// NewProblem creates the problem variant for a tag. Panic on unknown tags:
// the set is closed, so an unknown tag is a programmer error.
func NewProblem(t ProblemType) Problem {
	switch t {
	case Linear:
		return NewLinearRegression()
	case Logistic:
		return NewLogisticRegression()
	case Polynomial:
		return NewPolynomialRegression()
	default:
		panic(fmt.Sprintf("unknown problem type: %v", t))
	}
}

// RandomParameters draws an initialization uniformly from the visualized
// parameter range.
func RandomParameters(rng base.RandomGenerator) Parameters {
	v := rng.UniformVector(2, ParameterMin, ParameterMax)
	return Parameters{A: v[0], B: v[1]}
}

// clampGeneratorArgs recovers invalid generator configuration locally.
func clampGeneratorArgs(numPoints int, trainRatio, noiseLevel float64) (int, float64, float64) {
	numPoints = base.ClipInt(numPoints, 1, 1<<20)
	trainRatio = base.Clip(trainRatio, 0, 1)
	if noiseLevel < 0 {
		noiseLevel = 0
	}
	return numPoints, trainRatio, noiseLevel
}

// sampleInputs spaces numPoints inputs evenly across [low, high] with a
// small jitter.
func sampleInputs(rng base.RandomGenerator, numPoints int, low, high float64) []float64 {
	if numPoints == 1 {
		return []float64{rng.Uniform(low, high)}
	}
	xs := base.LinSpace(low, high, numPoints)
	jitter := (high - low) / float64(numPoints-1) * 0.25
	for i := range xs {
		xs[i] += rng.Noise(jitter)
	}
	return xs
}
