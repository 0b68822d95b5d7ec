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
	"math"

	"github.com/descent-io/descent/base"
)

// levelDelta keeps the log of contour levels and normalized losses defined
// when the minimum sampled loss is zero.
const levelDelta = 0.001

// ContourLevels derives numLevels thresholds log-spaced between
// minLoss+δ and maxLoss+δ. Squared-error and cross-entropy losses grow
// exponentially away from the optimum, so log spacing keeps level lines
// legible near it.
func (g *Grid) ContourLevels(numLevels int) []float64 {
	numLevels = base.ClipInt(numLevels, 1, 100)
	low := math.Log(g.minLoss + levelDelta)
	high := math.Log(g.maxLoss + levelDelta)
	if numLevels == 1 || high <= low {
		return []float64{g.minLoss + levelDelta}
	}
	levels := base.LinSpace(low, high, numLevels)
	for i := range levels {
		levels[i] = math.Exp(levels[i])
	}
	return levels
}

// Normalized log-normalizes a loss value into [0, 1] relative to the
// sampled extremes. Lower loss always maps to a lower value; that
// monotonicity is what color mapping relies on.
func (g *Grid) Normalized(loss float64) float64 {
	denominator := math.Log((g.maxLoss + levelDelta) / (g.minLoss + levelDelta))
	if denominator <= 0 {
		return 0
	}
	v := math.Log((loss+levelDelta)/(g.minLoss+levelDelta)) / denominator
	return base.Clip(v, 0, 1)
}
