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

package landscape

import (
	"context"
	"math"

	"github.com/samber/lo"

	"github.com/descent-io/descent/model"
)

// zeroGradientNorm suppresses arrows at cells where the gradient vanishes,
// instead of dividing by a zero magnitude.
const zeroGradientNorm = 1e-12

// Arrow is one cell of the gradient arrow field. Dir is the unit steepest
// descent direction (the negative gradient, normalized for display);
// Magnitude ranks the gradient norm at the cell against the largest norm
// on the grid, in (0, 1].
type Arrow struct {
	A         float64
	B         float64
	DirA      float64
	DirB      float64
	Magnitude float64
}

// VectorField samples the steepest-descent direction field on a coarse
// grid. Arrow density must stay visually sparse, so callers use a much
// lower resolution here than for the scalar field (12×12 against 60×60 is
// typical); both read the same loss and gradient.
func VectorField(ctx context.Context, data []model.DataPoint, problem model.Problem, resolution int, r Range) []Arrow {
	grid := Sample(ctx, data, problem, resolution, r)
	resolution = grid.Resolution()
	norms := make([][]float64, resolution)
	maxNorm := 0.0
	for i := 0; i < resolution; i++ {
		norms[i] = make([]float64, resolution)
		for j := 0; j < resolution; j++ {
			g := grid.At(i, j).Gradient
			norms[i][j] = math.Hypot(g.A, g.B)
		}
		maxNorm = math.Max(maxNorm, lo.Max(norms[i]))
	}
	if maxNorm < zeroGradientNorm {
		return nil
	}
	arrows := make([]Arrow, 0, resolution*resolution)
	for i := 0; i < resolution; i++ {
		for j := 0; j < resolution; j++ {
			norm := norms[i][j]
			if norm < zeroGradientNorm {
				continue
			}
			point := grid.At(i, j)
			arrows = append(arrows, Arrow{
				A:         point.A,
				B:         point.B,
				DirA:      -point.Gradient.A / norm,
				DirB:      -point.Gradient.B / norm,
				Magnitude: norm / maxNorm,
			})
		}
	}
	return arrows
}
