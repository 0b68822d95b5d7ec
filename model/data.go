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
	"github.com/samber/lo"

	"github.com/descent-io/descent/base"
)

// DataPoint is one observation. Label is meaningful only for
// classification problems, where it is 0 or 1. A point is immutable after
// generation except for IsTraining, which Resplit may reassign.
type DataPoint struct {
	X          float64
	Y          float64
	IsTraining bool
	Label      int
}

// Input domain used by the regression data generators.
const (
	inputMin = -2.0
	inputMax = 2.0
)

// TrainingPoints returns the training subset of data.
func TrainingPoints(data []DataPoint) []DataPoint {
	return lo.Filter(data, func(p DataPoint, _ int) bool { return p.IsTraining })
}

// TestPoints returns the held-out subset of data.
func TestPoints(data []DataPoint) []DataPoint {
	return lo.Filter(data, func(p DataPoint, _ int) bool { return !p.IsTraining })
}

// markSplit marks the first floor(n*trainRatio) points as training and
// shuffles the slice order. The marks travel with the points.
func markSplit(rng base.RandomGenerator, points []DataPoint, trainRatio float64) {
	count := int(float64(len(points)) * trainRatio)
	for i := range points {
		points[i].IsTraining = i < count
	}
	rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
}

// Resplit reassigns the train/test marks of an existing dataset in place,
// choosing the training subset at random. The points themselves are
// untouched.
func Resplit(rng base.RandomGenerator, data []DataPoint, trainRatio float64) {
	trainRatio = base.Clip(trainRatio, 0, 1)
	count := int(float64(len(data)) * trainRatio)
	perm := rng.Perm(len(data))
	for i, j := range perm {
		data[j].IsTraining = i < count
	}
}

// Accuracy returns the fraction of points whose predicted class matches
// the label under the decision score a·x+b·y. Zero on an empty dataset.
func Accuracy(data []DataPoint, params Parameters) float64 {
	if len(data) == 0 {
		return 0
	}
	correct := 0
	for _, p := range data {
		predicted := 0
		if sigmoid(params.A*p.X+params.B*p.Y) >= 0.5 {
			predicted = 1
		}
		if predicted == p.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(data))
}
