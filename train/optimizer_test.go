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

package train

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/descent-io/descent/base"
	"github.com/descent-io/descent/model"
)

func TestStepDescends(t *testing.T) {
	rng := base.NewRandomGenerator(0)
	for _, problemType := range model.ProblemTypes {
		t.Run(string(problemType), func(t *testing.T) {
			problem := model.NewProblem(problemType)
			data := problem.GenerateData(rng, 30, 1.0, 0.3)
			for trial := 0; trial < 20; trial++ {
				params := model.Parameters{A: rng.Uniform(-3, 3), B: rng.Uniform(-3, 3)}
				next := Step(data, params, 0.01, problem)
				assert.LessOrEqual(t, problem.Loss(data, next), problem.Loss(data, params)+1e-12)
			}
		})
	}
}

func TestStepClampsLearningRate(t *testing.T) {
	problem := model.NewLinearRegression()
	data := problem.GenerateData(base.NewRandomGenerator(1), 10, 1.0, 0)
	params := model.Parameters{A: -1, B: 3}
	assert.Equal(t, Step(data, params, 1, problem), Step(data, params, 5, problem))
	assert.Equal(t, Step(data, params, MinLearningRate, problem), Step(data, params, -1, problem))
}

func TestConvergenceOnNoiselessData(t *testing.T) {
	rng := base.NewRandomGenerator(2)
	for _, problemType := range []model.ProblemType{model.Linear, model.Polynomial} {
		t.Run(string(problemType), func(t *testing.T) {
			problem := model.NewProblem(problemType)
			data := problem.GenerateData(rng, 50, 1.0, 0)
			params := model.Parameters{}
			for i := 0; i < 5000; i++ {
				params = Step(data, params, 0.05, problem)
			}
			truth := problem.TrueParameters()
			assert.InDelta(t, truth.A, params.A, 1e-3)
			assert.InDelta(t, truth.B, params.B, 1e-3)
		})
	}
}

func TestLinearRegressionExactFit(t *testing.T) {
	problem := model.NewLinearRegression()
	data := []model.DataPoint{
		{X: 0, Y: 0, IsTraining: true},
		{X: 1, Y: 1, IsTraining: true},
	}
	params := model.Parameters{}
	for i := 0; i < 500; i++ {
		params = Step(data, params, 0.5, problem)
	}
	assert.InDelta(t, 1.0, params.A, 1e-3)
	assert.InDelta(t, 0.0, params.B, 1e-3)
}

func TestHasConverged(t *testing.T) {
	assert.True(t, HasConverged(
		model.Parameters{A: 1, B: 1},
		model.Parameters{A: 1 + 1e-7, B: 1 - 1e-7}, 1e-6))
	assert.False(t, HasConverged(
		model.Parameters{A: 1, B: 1},
		model.Parameters{A: 1 + 1e-5, B: 1}, 1e-6))
	// non-positive thresholds fall back to the default
	assert.True(t, HasConverged(
		model.Parameters{A: 1, B: 1},
		model.Parameters{A: 1, B: 1}, 0))
}

func TestEstimateDivergenceLearningRate(t *testing.T) {
	problem := model.NewLinearRegression()
	data := problem.GenerateData(base.NewRandomGenerator(3), 50, 1.0, 0)
	params := model.Parameters{A: 0, B: 0}
	estimate := EstimateDivergenceLearningRate(data, problem, params)
	assert.Greater(t, estimate, 0.0)
	assert.False(t, math.IsInf(estimate, 1))
	// descent at half the estimated bound stays stable
	stable := base.Clip(estimate/2, MinLearningRate, MaxLearningRate)
	loss := problem.Loss(data, params)
	for i := 0; i < 100; i++ {
		params = Step(data, params, stable, problem)
	}
	assert.Less(t, problem.Loss(data, params), loss)
	// flat landscape: nothing to diverge on
	assert.True(t, math.IsInf(EstimateDivergenceLearningRate(nil, problem, params), 1))
}
