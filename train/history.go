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
	"github.com/descent-io/descent/model"
)

// HistoryPoint is one entry of the training ledger, produced per optimizer
// step or manual drag.
type HistoryPoint struct {
	Step       int
	TrainLoss  float64
	TestLoss   float64
	Parameters model.Parameters
}

// History is the append-only, time-ordered ledger of a training session.
// It is the source of truth for the optimization-path overlay and the
// loss-vs-step chart. Steps are monotonically non-decreasing; ties occur
// only across a Reset.
type History struct {
	points []HistoryPoint
}

// NewHistory creates a History anchored at the given starting point, so
// consumers never observe an empty ledger.
func NewHistory(start HistoryPoint) *History {
	h := &History{}
	h.Reset(start)
	return h
}

// Append adds one entry to the ledger.
func (h *History) Append(point HistoryPoint) {
	h.points = append(h.points, point)
}

// Reset clears the ledger and re-anchors it at start with step 0.
func (h *History) Reset(start HistoryPoint) {
	start.Step = 0
	h.points = h.points[:0]
	h.points = append(h.points, start)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.points)
}

// Last returns the most recent entry.
func (h *History) Last() HistoryPoint {
	return h.points[len(h.points)-1]
}

// Points returns a copy of the full ordered sequence. Consumers that only
// display a window slice it themselves.
func (h *History) Points() []HistoryPoint {
	points := make([]HistoryPoint, len(h.points))
	copy(points, h.points)
	return points
}

// Window returns a copy of the most recent n entries. Sizes outside
// [0, Len] are clamped.
func (h *History) Window(n int) []HistoryPoint {
	if n >= len(h.points) {
		return h.Points()
	}
	if n < 0 {
		n = 0
	}
	points := make([]HistoryPoint, n)
	copy(points, h.points[len(h.points)-n:])
	return points
}
