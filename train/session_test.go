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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/descent-io/descent/base/progress"
	"github.com/descent-io/descent/landscape"
	"github.com/descent-io/descent/model"
)

func newTestSession(t *testing.T, cfg Config, clock Clock) *Session {
	t.Helper()
	s := NewSession(cfg, clock)
	t.Cleanup(s.Stop)
	return s
}

func TestSessionAdvance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoiseLevel = 0
	cfg.LearningRate = 0.05
	cfg.Seed = 1
	s := newTestSession(t, cfg, nil)
	before := s.Snapshot()
	require.NoError(t, s.Advance(10))
	after := s.Snapshot()
	assert.Equal(t, 10, after.Step)
	assert.Equal(t, 11, len(s.History()))
	assert.Less(t, after.TrainLoss, before.TrainLoss)
	// steps are monotonically non-decreasing
	points := s.History()
	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].Step, points[i-1].Step)
	}
}

func TestSessionTickerRun(t *testing.T) {
	clock := NewManualClock()
	cfg := DefaultConfig()
	cfg.TotalSteps = 5
	cfg.Seed = 2
	s := newTestSession(t, cfg, clock)
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, StateTraining, s.State())
	assert.Error(t, s.Advance(1))
	for i := 0; i < 5; i++ {
		clock.Tick()
	}
	assert.Eventually(t, func() bool {
		return s.State() == StateIdle && s.Snapshot().Step == 5
	}, time.Second, time.Millisecond)
	assert.Equal(t, 6, len(s.History()))
}

func TestSessionPauseResume(t *testing.T) {
	clock := NewManualClock()
	cfg := DefaultConfig()
	cfg.TotalSteps = 10
	cfg.Seed = 3
	s := newTestSession(t, cfg, clock)
	require.NoError(t, s.Start(context.Background()))
	for i := 0; i < 3; i++ {
		clock.Tick()
	}
	assert.Eventually(t, func() bool {
		return s.Snapshot().Step == 3
	}, time.Second, time.Millisecond)
	require.NoError(t, s.Pause())
	assert.Equal(t, StatePaused, s.State())
	assert.Equal(t, 3, s.Snapshot().Step)
	assert.Equal(t, 7, s.Snapshot().Remaining)
	// resume completes the interrupted run
	require.NoError(t, s.Start(context.Background()))
	for i := 0; i < 7; i++ {
		clock.Tick()
	}
	assert.Eventually(t, func() bool {
		return s.State() == StateIdle && s.Snapshot().Step == 10
	}, time.Second, time.Millisecond)
}

func TestSessionStartWhileTraining(t *testing.T) {
	clock := NewManualClock()
	cfg := DefaultConfig()
	cfg.Seed = 4
	s := newTestSession(t, cfg, clock)
	require.NoError(t, s.Start(context.Background()))
	assert.Error(t, s.Start(context.Background()))
	require.NoError(t, s.Pause())
	assert.Equal(t, StatePaused, s.State())
}

func TestSessionDrag(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	s := newTestSession(t, cfg, nil)
	target := model.Parameters{A: 2.5, B: -1.5}
	s.DragTo(target)
	assert.Equal(t, target, s.Parameters())
	assert.Equal(t, 1, s.Snapshot().Step)
	assert.Equal(t, 2, len(s.History()))
	last := s.History()[1]
	assert.Equal(t, target, last.Parameters)
}

func TestSessionReset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 6
	s := newTestSession(t, cfg, nil)
	require.NoError(t, s.Advance(5))
	s.Reset()
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 0, s.Snapshot().Step)
	history := s.History()
	assert.Equal(t, 1, len(history))
	assert.Equal(t, 0, history[0].Step)
}

func TestSessionLandscapeCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	s := newTestSession(t, cfg, nil)
	ctx := context.Background()
	r := landscape.DefaultRange()
	first := s.Landscape(ctx, 20, r)
	// parameter movement does not invalidate the cache
	s.DragTo(model.Parameters{A: 1, B: 1})
	assert.Same(t, first, s.Landscape(ctx, 20, r))
	// a different resolution is a different landscape
	assert.NotSame(t, first, s.Landscape(ctx, 12, r))
	// regenerating data invalidates
	s.Regenerate(cfg.NumPoints, cfg.TrainRatio, cfg.NoiseLevel)
	assert.NotSame(t, first, s.Landscape(ctx, 20, r))
	// resplitting invalidates
	second := s.Landscape(ctx, 20, r)
	s.Resplit(0.5)
	assert.NotSame(t, second, s.Landscape(ctx, 20, r))
}

func TestSessionLandscapeStaysFresh(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11
	s := newTestSession(t, cfg, nil)
	ctx := context.Background()
	r := landscape.DefaultRange()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			s.Regenerate(cfg.NumPoints, cfg.TrainRatio, cfg.NoiseLevel)
		}
	}()
	for i := 0; i < 20; i++ {
		s.Landscape(ctx, 8, r)
	}
	<-done
	// whatever interleaving happened, the cache must reflect the current
	// dataset
	got := s.Landscape(ctx, 8, r)
	want := landscape.Sample(ctx, model.TrainingPoints(s.Data()), s.Problem(), 8, r)
	assert.Equal(t, want.MinLoss(), got.MinLoss())
	assert.Equal(t, want.MaxLoss(), got.MaxLoss())
}

func TestSessionProgress(t *testing.T) {
	clock := NewManualClock()
	cfg := DefaultConfig()
	cfg.TotalSteps = 3
	cfg.Seed = 3
	s := newTestSession(t, cfg, clock)
	assert.Empty(t, s.Progress())
	require.NoError(t, s.Start(context.Background()))
	for i := 0; i < 3; i++ {
		clock.Tick()
	}
	assert.Eventually(t, func() bool {
		list := s.Progress()
		return len(list) == 1 && list[0].Status == progress.StatusComplete
	}, time.Second, time.Millisecond)
	span := s.Progress()[0]
	assert.Equal(t, 3, span.Total)
	assert.Equal(t, 3, span.Count)
}

func TestSessionLogisticSeparability(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Problem = model.Logistic
	cfg.NumPoints = 40
	cfg.NoiseLevel = 0
	cfg.LearningRate = 0.5
	cfg.Seed = 8
	s := newTestSession(t, cfg, nil)
	require.NoError(t, s.Advance(3000))
	data := s.Data()
	accuracy := model.Accuracy(model.TrainingPoints(data), s.Parameters())
	assert.Equal(t, 1.0, accuracy)
}

func TestSessionConfigClamping(t *testing.T) {
	cfg := Config{
		Problem:      model.Linear,
		NumPoints:    -5,
		TrainRatio:   7,
		NoiseLevel:   -1,
		LearningRate: 99,
		TotalSteps:   0,
	}
	s := newTestSession(t, cfg, nil)
	view := s.Snapshot()
	assert.Equal(t, 1, view.NumPoints)
	assert.Equal(t, StateIdle, view.State)
}
