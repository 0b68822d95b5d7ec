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

package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descent-io/descent/base"
	"github.com/descent-io/descent/landscape"
	"github.com/descent-io/descent/model"
	"github.com/descent-io/descent/train"
)

func TestLandscape(t *testing.T) {
	rng := base.NewRandomGenerator(0)
	problem := model.NewProblem(model.Linear)
	data := problem.GenerateData(rng, 20, 0.8, 0.1)
	grid := landscape.Sample(context.Background(), data, problem, 24, landscape.DefaultRange())
	arrows := landscape.VectorField(context.Background(), data, problem, 6, landscape.DefaultRange())
	current := model.Parameters{A: -3, B: 2}
	target := problem.TrueParameters()

	p, err := Landscape(grid, LandscapeOptions{
		NumLevels: 8,
		Arrows:    arrows,
		Path:      []model.Parameters{{A: -3, B: 2}, {A: -1, B: 1.5}, {A: 1, B: 1.2}},
		Current:   &current,
		Target:    &target,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "landscape.png")
	require.NoError(t, Save(p, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLandscapeFlat(t *testing.T) {
	// an empty dataset yields a flat, single-level landscape
	problem := model.NewProblem(model.Linear)
	grid := landscape.Sample(context.Background(), nil, problem, 8, landscape.DefaultRange())
	p, err := Landscape(grid, LandscapeOptions{NumLevels: 8})
	require.NoError(t, err)
	require.NoError(t, Save(p, filepath.Join(t.TempDir(), "flat.png")))
}

func TestLossCurves(t *testing.T) {
	points := []train.HistoryPoint{
		{Step: 0, TrainLoss: 4, TestLoss: 5},
		{Step: 1, TrainLoss: 2, TestLoss: 2.5},
		{Step: 2, TrainLoss: 1, TestLoss: 1.4},
	}
	p, err := LossCurves(points)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "loss.png")
	require.NoError(t, Save(p, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestLossCurvesEmpty(t *testing.T) {
	_, err := LossCurves(nil)
	assert.Error(t, err)
}

func TestData(t *testing.T) {
	rng := base.NewRandomGenerator(42)
	for _, tag := range model.ProblemTypes {
		t.Run(string(tag), func(t *testing.T) {
			problem := model.NewProblem(tag)
			data := problem.GenerateData(rng, 30, 0.8, 0.3)
			p, err := Data(problem, data, problem.TrueParameters())
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "data.png")
			require.NoError(t, Save(p, path))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestDataVerticalBoundary(t *testing.T) {
	rng := base.NewRandomGenerator(7)
	problem := model.NewProblem(model.Logistic)
	data := problem.GenerateData(rng, 20, 0.8, 0.3)
	p, err := Data(problem, data, model.Parameters{A: 1, B: 0})
	require.NoError(t, err)
	require.NoError(t, Save(p, filepath.Join(t.TempDir(), "vertical.png")))
}
