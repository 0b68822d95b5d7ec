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

// Package landscape samples the loss of a problem over a regular grid in
// the two-dimensional parameter space. The resulting scalar field feeds
// heatmap, contour and surface rendering; the vector field feeds gradient
// arrow rendering. Sampling is O(resolution²·|data|) and is the dominant
// cost of the system, so callers recompute a grid only when the dataset,
// the problem or the range changes, never on parameter movement.
package landscape

import (
	"context"

	"github.com/descent-io/descent/base"
	"github.com/descent-io/descent/base/progress"
	"github.com/descent-io/descent/model"
)

// Range is a closed interval of parameter values, applied to both axes.
type Range struct {
	Min float64
	Max float64
}

// DefaultRange is the conventional visualization range of both parameters.
func DefaultRange() Range {
	return Range{Min: model.ParameterMin, Max: model.ParameterMax}
}

// Grid resolution bounds. Resolutions outside are clamped.
const (
	MinResolution = 2
	MaxResolution = 512
)

// GridPoint is one sampled cell of the loss landscape.
type GridPoint struct {
	A        float64
	B        float64
	Loss     float64
	Gradient model.Parameters
}

// Grid is a sampled loss landscape. Never mutated after sampling; a stale
// grid is discarded wholesale and resampled.
type Grid struct {
	resolution int
	span       Range
	axisA      []float64
	axisB      []float64
	points     [][]GridPoint
	minLoss    float64
	maxLoss    float64
}

// Sample evaluates loss and gradient of problem over data on a
// resolution×resolution grid spanning r on both axes. Invalid resolutions
// and empty ranges are clamped, never fatal.
func Sample(ctx context.Context, data []model.DataPoint, problem model.Problem, resolution int, r Range) *Grid {
	resolution = base.ClipInt(resolution, MinResolution, MaxResolution)
	if r.Min >= r.Max {
		r = DefaultRange()
	}
	grid := &Grid{
		resolution: resolution,
		span:       r,
		axisA:      base.LinSpace(r.Min, r.Max, resolution),
		axisB:      base.LinSpace(r.Min, r.Max, resolution),
		points:     make([][]GridPoint, resolution),
	}
	_, span := progress.Start(ctx, "landscape.Sample", resolution)
	for i := 0; i < resolution; i++ {
		grid.points[i] = make([]GridPoint, resolution)
		for j := 0; j < resolution; j++ {
			params := model.Parameters{A: grid.axisA[i], B: grid.axisB[j]}
			loss := problem.Loss(data, params)
			grid.points[i][j] = GridPoint{
				A:        params.A,
				B:        params.B,
				Loss:     loss,
				Gradient: problem.Gradient(data, params),
			}
			if i == 0 && j == 0 || loss < grid.minLoss {
				grid.minLoss = loss
			}
			if i == 0 && j == 0 || loss > grid.maxLoss {
				grid.maxLoss = loss
			}
		}
		span.Add(1)
	}
	span.End()
	return grid
}

// Resolution returns the number of samples per axis.
func (g *Grid) Resolution() int {
	return g.resolution
}

// Span returns the sampled parameter range.
func (g *Grid) Span() Range {
	return g.span
}

// At returns the cell at index (i, j), where i indexes the A axis and j
// the B axis.
func (g *Grid) At(i, j int) GridPoint {
	return g.points[i][j]
}

// AxisA returns the sampled values of parameter a.
func (g *Grid) AxisA() []float64 {
	return g.axisA
}

// AxisB returns the sampled values of parameter b.
func (g *Grid) AxisB() []float64 {
	return g.axisB
}

// MinLoss returns the smallest sampled loss.
func (g *Grid) MinLoss() float64 {
	return g.minLoss
}

// MaxLoss returns the largest sampled loss.
func (g *Grid) MaxLoss() float64 {
	return g.maxLoss
}
