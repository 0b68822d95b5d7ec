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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/descent-io/descent/base"
	"github.com/descent-io/descent/base/log"
	"github.com/descent-io/descent/base/progress"
	"github.com/descent-io/descent/landscape"
	"github.com/descent-io/descent/model"
)

// State of a training session.
type State string

const (
	StateIdle     State = "Idle"
	StateTraining State = "Training"
	StatePaused   State = "Paused"
)

// DefaultTickPeriod is the nominal period of the training timer.
const DefaultTickPeriod = 50 * time.Millisecond

// Config holds the settings of a session. Out-of-range values are clamped
// by withDefaults, never fatal.
type Config struct {
	Problem      model.ProblemType
	NumPoints    int
	TrainRatio   float64
	NoiseLevel   float64
	LearningRate float64
	TotalSteps   int
	TickPeriod   time.Duration
	Seed         int64
}

// DefaultConfig returns the settings of a fresh session.
func DefaultConfig() Config {
	return Config{
		Problem:      model.Linear,
		NumPoints:    30,
		TrainRatio:   0.8,
		NoiseLevel:   0.5,
		LearningRate: 0.1,
		TotalSteps:   100,
		TickPeriod:   DefaultTickPeriod,
	}
}

func (c Config) withDefaults() Config {
	c.NumPoints = base.ClipInt(c.NumPoints, 1, 1<<20)
	c.TrainRatio = base.Clip(c.TrainRatio, 0.05, 0.95)
	if c.NoiseLevel < 0 {
		c.NoiseLevel = 0
	}
	c.LearningRate = base.Clip(c.LearningRate, MinLearningRate, MaxLearningRate)
	c.TotalSteps = base.ClipInt(c.TotalSteps, 1, 1<<20)
	if c.TickPeriod <= 0 {
		c.TickPeriod = DefaultTickPeriod
	}
	return c
}

// Session owns the mutable state of one optimization run: the dataset, the
// current parameters, the history and the cached loss landscape. All
// mutation is serialized under one mutex, whether it comes from the
// training ticker or from a direct caller (drag, reset, regenerate), so at
// most one mutation is in flight at a time.
type Session struct {
	mu        sync.Mutex
	id        string
	cfg       Config
	problem   model.Problem
	rng       base.RandomGenerator
	data      []model.DataPoint
	trainData []model.DataPoint
	testData  []model.DataPoint
	params    model.Parameters
	history   *History
	state     State
	step      int
	remaining int
	clock     Clock
	cancel    chan struct{}
	tracer    *progress.Tracer
	span      *progress.Span

	grid           *landscape.Grid
	gridResolution int
	gridRange      landscape.Range
	dataGen        int
}

// View is a read-only snapshot of a session, safe to consume between
// ticks.
type View struct {
	ID          string
	State       State
	Step        int
	Remaining   int
	Parameters  model.Parameters
	TrainLoss   float64
	TestLoss    float64
	NumPoints   int
	NumTraining int
}

// NewSession creates a session, generates its dataset and anchors the
// history at step 0 with the random initial parameters. A nil clock means
// wall time.
func NewSession(cfg Config, clock Clock) *Session {
	cfg = cfg.withDefaults()
	if clock == nil {
		clock = WallClock{}
	}
	id := uuid.New().String()
	s := &Session{
		id:      id,
		cfg:     cfg,
		problem: model.NewProblem(cfg.Problem),
		rng:     base.NewRandomGenerator(cfg.Seed),
		state:   StateIdle,
		clock:   clock,
		tracer:  progress.NewTracer(id),
	}
	s.data = s.problem.GenerateData(s.rng, cfg.NumPoints, cfg.TrainRatio, cfg.NoiseLevel)
	s.splitChanged()
	s.params = model.RandomParameters(s.rng)
	s.history = NewHistory(s.historyPoint())
	log.Logger().Info("new session",
		zap.String("id", s.id),
		zap.String("problem", string(cfg.Problem)),
		zap.Int("train_set_size", len(s.trainData)),
		zap.Int("test_set_size", len(s.testData)),
		zap.Any("config", cfg))
	return s
}

// Start begins or resumes training. From Idle a full run of TotalSteps
// begins; from Paused the remaining steps of the interrupted run continue.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateTraining:
		return errors.New("session is already training")
	case StateIdle:
		s.remaining = s.cfg.TotalSteps
	case StatePaused:
		if s.remaining == 0 {
			s.state = StateIdle
			return nil
		}
	}
	s.state = StateTraining
	s.cancel = make(chan struct{})
	_, s.span = s.tracer.Start(ctx, "train "+string(s.cfg.Problem), s.remaining)
	log.Logger().Info("start training",
		zap.String("id", s.id),
		zap.Int("remaining_steps", s.remaining),
		zap.Float64("learning_rate", s.cfg.LearningRate),
		zap.Float64("train_loss", s.problem.Loss(s.trainData, s.params)))
	go s.run(ctx, s.cancel)
	return nil
}

func (s *Session) run(ctx context.Context, cancel chan struct{}) {
	ticker := s.clock.NewTicker(s.cfg.TickPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ctx.Done():
			s.mu.Lock()
			if s.state == StateTraining {
				s.state = StateIdle
			}
			s.mu.Unlock()
			return
		case <-ticker.Chan():
			if done := s.tick(); done {
				return
			}
		}
	}
}

// tick performs exactly one optimizer step. All work of a tick (gradient,
// update, history append) completes before the next tick may fire.
func (s *Session) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTraining || s.remaining <= 0 {
		return true
	}
	s.stepLocked()
	s.remaining--
	if s.span != nil {
		s.span.Add(1)
	}
	if s.remaining == 0 {
		s.state = StateIdle
		if s.span != nil {
			s.span.End()
		}
		point := s.history.Last()
		log.Logger().Info("training complete",
			zap.String("id", s.id),
			zap.Int("step", point.Step),
			zap.Float64("train_loss", point.TrainLoss),
			zap.Float64("test_loss", point.TestLoss))
		return true
	}
	return false
}

func (s *Session) stepLocked() {
	s.params = Step(s.trainData, s.params, s.cfg.LearningRate, s.problem)
	s.step++
	s.history.Append(s.historyPoint())
}

func (s *Session) historyPoint() HistoryPoint {
	return HistoryPoint{
		Step:       s.step,
		TrainLoss:  s.problem.Loss(s.trainData, s.params),
		TestLoss:   s.problem.Loss(s.testData, s.params),
		Parameters: s.params,
	}
}

// Pause suspends a running session at the next tick boundary. The last
// completed step stays fully applied.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateTraining {
		return errors.New("session is not training")
	}
	close(s.cancel)
	s.state = StatePaused
	return nil
}

// Stop ends the current run. Effective between ticks; parameters and
// history keep the last completed step.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateTraining {
		close(s.cancel)
	}
	s.state = StateIdle
	s.remaining = 0
}

// Advance performs n optimizer steps synchronously. It drives the same
// step path as the ticker and is meant for tests and non-interactive use;
// it refuses to race a running ticker.
func (s *Session) Advance(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateTraining {
		return errors.New("session is training; stop or pause it first")
	}
	for i := 0; i < n; i++ {
		s.stepLocked()
	}
	return nil
}

// DragTo applies a manual parameter move. Permitted in any state; it
// continues the step counter and appends to the history like an optimizer
// step. Between a drag and a concurrent tick the last writer wins.
func (s *Session) DragTo(params model.Parameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = params
	s.step++
	s.history.Append(s.historyPoint())
}

// Reset stops any run, draws fresh random initial parameters and
// re-anchors the history at step 0. The dataset and the landscape cache
// are untouched: the landscape does not depend on parameters.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateTraining {
		close(s.cancel)
	}
	s.state = StateIdle
	s.remaining = 0
	s.step = 0
	s.params = model.RandomParameters(s.rng)
	s.history.Reset(s.historyPoint())
}

// Regenerate replaces the dataset wholesale using the given generation
// settings and invalidates the landscape cache.
func (s *Session) Regenerate(numPoints int, trainRatio, noiseLevel float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.NumPoints = numPoints
	s.cfg.TrainRatio = trainRatio
	s.cfg.NoiseLevel = noiseLevel
	s.cfg = s.cfg.withDefaults()
	s.data = s.problem.GenerateData(s.rng, s.cfg.NumPoints, s.cfg.TrainRatio, s.cfg.NoiseLevel)
	s.splitChanged()
}

// Resplit reassigns the train/test marks of the existing dataset and
// invalidates the landscape cache.
func (s *Session) Resplit(trainRatio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.TrainRatio = base.Clip(trainRatio, 0.05, 0.95)
	model.Resplit(s.rng, s.data, s.cfg.TrainRatio)
	s.splitChanged()
}

// splitChanged recomputes the cached train/test subsets and drops the
// landscape cache. Callers hold the mutex.
func (s *Session) splitChanged() {
	s.trainData = model.TrainingPoints(s.data)
	s.testData = model.TestPoints(s.data)
	s.grid = nil
	s.dataGen++
}

// SetLearningRate changes the step size of subsequent ticks, clamped into
// (0, 1].
func (s *Session) SetLearningRate(learningRate float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.LearningRate = base.Clip(learningRate, MinLearningRate, MaxLearningRate)
}

// Landscape returns the loss landscape over the training subset, sampling
// it only when the cache is stale. Parameter movement never invalidates
// the cache; dataset, split and range changes do.
func (s *Session) Landscape(ctx context.Context, resolution int, r landscape.Range) *landscape.Grid {
	s.mu.Lock()
	if s.grid != nil && s.gridResolution == resolution && s.gridRange == r {
		grid := s.grid
		s.mu.Unlock()
		return grid
	}
	gen := s.dataGen
	trainData := s.trainData
	problem := s.problem
	s.mu.Unlock()
	grid := landscape.Sample(ctx, trainData, problem, resolution, r)
	s.mu.Lock()
	// a Regenerate/Resplit during sampling makes this grid stale
	if s.dataGen == gen {
		s.grid = grid
		s.gridResolution = resolution
		s.gridRange = r
	}
	s.mu.Unlock()
	return grid
}

// Snapshot returns a read-only view of the session.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:          s.id,
		State:       s.state,
		Step:        s.step,
		Remaining:   s.remaining,
		Parameters:  s.params,
		TrainLoss:   s.problem.Loss(s.trainData, s.params),
		TestLoss:    s.problem.Loss(s.testData, s.params),
		NumPoints:   len(s.data),
		NumTraining: len(s.trainData),
	}
}

// Progress lists the spans traced for this session, training runs
// included, so a frontend can show a progress bar between ticks.
func (s *Session) Progress() []progress.Progress {
	return s.tracer.List()
}

// History returns a copy of the full training ledger.
func (s *Session) History() []HistoryPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Points()
}

// Data returns a copy of the dataset.
func (s *Session) Data() []model.DataPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := make([]model.DataPoint, len(s.data))
	copy(data, s.data)
	return data
}

// Problem returns the session's problem variant.
func (s *Session) Problem() model.Problem {
	return s.problem
}

// Parameters returns the current parameters.
func (s *Session) Parameters() model.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
