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

// Package train implements full-batch fixed-step gradient descent over the
// two-parameter problems and the session that drives it: an append-only
// training history and an Idle/Training/Paused state machine stepped by an
// injected clock.
package train

import (
	"math"

	"github.com/descent-io/descent/base"
	"github.com/descent-io/descent/model"
)

// Learning rate bounds. Rates outside (0, 1] are clamped, never fatal.
const (
	MinLearningRate = 1e-6
	MaxLearningRate = 1.0
)

// DefaultConvergenceThreshold is the per-component update size below which
// two successive parameter states count as converged.
const DefaultConvergenceThreshold = 1e-6

// Step performs one full-batch gradient descent update and returns the
// next parameters. Pure: neither data nor params are mutated, so it is
// safe to call on every animation tick.
func Step(data []model.DataPoint, params model.Parameters, learningRate float64, problem model.Problem) model.Parameters {
	learningRate = base.Clip(learningRate, MinLearningRate, MaxLearningRate)
	g := problem.Gradient(data, params)
	return model.Parameters{
		A: params.A - learningRate*g.A,
		B: params.B - learningRate*g.B,
	}
}

// HasConverged reports whether both parameter deltas between successive
// states are below threshold. Non-positive thresholds fall back to
// DefaultConvergenceThreshold.
func HasConverged(old, next model.Parameters, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultConvergenceThreshold
	}
	return math.Abs(next.A-old.A) < threshold && math.Abs(next.B-old.B) < threshold
}

// EstimateDivergenceLearningRate estimates the learning rate above which
// descent is expected to diverge around params, from a local Lipschitz
// estimate of the gradient along each axis. Heuristic and informational
// only: it never blocks training. Returns +Inf on a locally flat
// landscape.
func EstimateDivergenceLearningRate(data []model.DataPoint, problem model.Problem, params model.Parameters) float64 {
	const h = 1e-4
	g := problem.Gradient(data, params)
	ga := problem.Gradient(data, model.Parameters{A: params.A + h, B: params.B})
	gb := problem.Gradient(data, model.Parameters{A: params.A, B: params.B + h})
	lipschitz := math.Max(math.Abs(ga.A-g.A), math.Abs(gb.B-g.B)) / h
	if lipschitz < 1e-12 {
		return math.Inf(1)
	}
	return 2 / lipschitz
}
