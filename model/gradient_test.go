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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/descent-io/descent/base"
)

const gradientTolerance = 1e-4

// numericalGradient approximates the gradient of Loss by central finite
// differences.
func numericalGradient(p Problem, data []DataPoint, params Parameters) Parameters {
	const h = 1e-6
	lossA0 := p.Loss(data, Parameters{A: params.A - h, B: params.B})
	lossA1 := p.Loss(data, Parameters{A: params.A + h, B: params.B})
	lossB0 := p.Loss(data, Parameters{A: params.A, B: params.B - h})
	lossB1 := p.Loss(data, Parameters{A: params.A, B: params.B + h})
	return Parameters{
		A: (lossA1 - lossA0) / (2 * h),
		B: (lossB1 - lossB0) / (2 * h),
	}
}

func TestGradientMatchesLoss(t *testing.T) {
	rng := base.NewRandomGenerator(0)
	for _, problemType := range ProblemTypes {
		t.Run(string(problemType), func(t *testing.T) {
			problem := NewProblem(problemType)
			data := problem.GenerateData(rng, 40, 0.8, 0.5)
			for trial := 0; trial < 50; trial++ {
				params := Parameters{A: rng.Uniform(-3, 3), B: rng.Uniform(-3, 3)}
				analytic := problem.Gradient(data, params)
				numeric := numericalGradient(problem, data, params)
				assert.InDelta(t, numeric.A, analytic.A, gradientTolerance)
				assert.InDelta(t, numeric.B, analytic.B, gradientTolerance)
			}
		})
	}
}

func TestLossNonNegative(t *testing.T) {
	rng := base.NewRandomGenerator(1)
	for _, problemType := range ProblemTypes {
		problem := NewProblem(problemType)
		data := problem.GenerateData(rng, 30, 0.7, 1.0)
		for trial := 0; trial < 100; trial++ {
			params := Parameters{A: rng.Uniform(-5, 5), B: rng.Uniform(-5, 5)}
			assert.GreaterOrEqual(t, problem.Loss(data, params), 0.0)
		}
	}
}

func TestEmptyDataset(t *testing.T) {
	for _, problemType := range ProblemTypes {
		problem := NewProblem(problemType)
		assert.Zero(t, problem.Loss(nil, Parameters{A: 1, B: 1}))
		assert.Equal(t, Parameters{}, problem.Gradient(nil, Parameters{A: 1, B: 1}))
		assert.Zero(t, problem.Loss([]DataPoint{}, Parameters{A: 1, B: 1}))
		assert.Equal(t, Parameters{}, problem.Gradient([]DataPoint{}, Parameters{A: 1, B: 1}))
	}
}
