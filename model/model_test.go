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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/descent-io/descent/base"
)

func TestNewProblem(t *testing.T) {
	for _, problemType := range ProblemTypes {
		problem := NewProblem(problemType)
		assert.Equal(t, problemType, problem.Type())
	}
	assert.Panics(t, func() { NewProblem("svm") })
}

func TestGenerateData(t *testing.T) {
	rng := base.NewRandomGenerator(0)
	for _, problemType := range ProblemTypes {
		t.Run(string(problemType), func(t *testing.T) {
			problem := NewProblem(problemType)
			data := problem.GenerateData(rng, 100, 0.8, 0.3)
			assert.Equal(t, 100, len(data))
			assert.Equal(t, 80, len(TrainingPoints(data)))
			assert.Equal(t, 20, len(TestPoints(data)))
		})
	}
}

func TestGenerateDataClampsArguments(t *testing.T) {
	rng := base.NewRandomGenerator(0)
	problem := NewLinearRegression()
	data := problem.GenerateData(rng, 0, 1.5, -1)
	assert.Equal(t, 1, len(data))
}

func TestNoiselessDataFitsTrueParameters(t *testing.T) {
	rng := base.NewRandomGenerator(3)
	for _, problemType := range []ProblemType{Linear, Polynomial} {
		problem := NewProblem(problemType)
		data := problem.GenerateData(rng, 50, 1.0, 0)
		assert.InDelta(t, 0, problem.Loss(data, problem.TrueParameters()), 1e-12)
	}
}

func TestNoiseIncreasesScatter(t *testing.T) {
	quiet := NewLinearRegression()
	noiseless := quiet.GenerateData(base.NewRandomGenerator(4), 200, 1.0, 0)
	noisy := quiet.GenerateData(base.NewRandomGenerator(4), 200, 1.0, 1.0)
	lossAtTruth := func(data []DataPoint) float64 {
		return quiet.Loss(data, quiet.TrueParameters())
	}
	assert.Greater(t, lossAtTruth(noisy), lossAtTruth(noiseless))
}

func TestLogisticPredictIsBoundaryLine(t *testing.T) {
	problem := NewLogisticRegression()
	params := Parameters{A: 2, B: 4}
	// a·x + b·Predict(x) must be zero on the boundary
	for _, x := range []float64{-1, 0, 2.5} {
		y := problem.Predict(x, params)
		assert.InDelta(t, 0, params.A*x+params.B*y, 1e-12)
	}
	// vertical boundary has no y-value
	assert.True(t, math.IsNaN(problem.Predict(1, Parameters{A: 2, B: 0})))
}

func TestLogisticProbability(t *testing.T) {
	problem := NewLogisticRegression()
	params := problem.TrueParameters()
	assert.InDelta(t, 0.5, problem.Probability(0, 0, params), 1e-12)
	assert.Greater(t, problem.Probability(1, 1, params), 0.5)
	assert.Less(t, problem.Probability(-1, -1, params), 0.5)
}

func TestLogisticLossFiniteInSaturation(t *testing.T) {
	problem := NewLogisticRegression()
	rng := base.NewRandomGenerator(5)
	data := problem.GenerateData(rng, 20, 1.0, 0.2)
	// extreme parameters saturate σ(z); the ε clamp keeps the loss finite
	loss := problem.Loss(data, Parameters{A: 1e6, B: -1e6})
	assert.False(t, math.IsInf(loss, 1))
	assert.False(t, math.IsNaN(loss))
	assert.GreaterOrEqual(t, loss, 0.0)
}

func TestLogisticClusterLabels(t *testing.T) {
	problem := NewLogisticRegression()
	rng := base.NewRandomGenerator(6)
	data := problem.GenerateData(rng, 100, 0.8, 0)
	for _, p := range data {
		if p.Label == 1 {
			assert.Equal(t, clusterPositive, [2]float64{p.X, p.Y})
		} else {
			assert.Equal(t, clusterNegative, [2]float64{p.X, p.Y})
		}
	}
}
