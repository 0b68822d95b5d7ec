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

// Package search tunes the learning rate with TPE over short training
// runs. The result is informational, like the divergence estimate: it
// suggests a rate, it never blocks one.
package search

import (
	"context"
	"math"

	"github.com/c-bata/goptuna"
	"github.com/c-bata/goptuna/tpe"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/descent-io/descent/base/log"
	"github.com/descent-io/descent/base/progress"
	"github.com/descent-io/descent/model"
	"github.com/descent-io/descent/train"
)

// Options configures a learning-rate search.
type Options struct {
	Trials        int     // number of TPE trials (default 20)
	StepsPerTrial int     // descent steps per trial (default 200)
	MinRate       float64 // lower bound of the log-uniform range (default 1e-4)
	MaxRate       float64 // upper bound (default 1)
}

func (o Options) withDefaults() Options {
	if o.Trials <= 0 {
		o.Trials = 20
	}
	if o.StepsPerTrial <= 0 {
		o.StepsPerTrial = 200
	}
	if o.MinRate <= 0 {
		o.MinRate = 1e-4
	}
	if o.MaxRate <= o.MinRate {
		o.MaxRate = train.MaxLearningRate
	}
	return o
}

// Trial records one evaluated learning rate.
type Trial struct {
	Rate float64
	Loss float64
}

// Result of a learning-rate search.
type Result struct {
	BestRate float64
	BestLoss float64
	Trials   []Trial
}

// divergedLoss stands in for runs whose loss left the float range, so TPE
// still ranks them.
const divergedLoss = 1e30

// LearningRate searches for the rate whose short fixed-budget run from
// init reaches the lowest training loss on data.
func LearningRate(ctx context.Context, problem model.Problem, data []model.DataPoint, init model.Parameters, opts Options) (Result, error) {
	opts = opts.withDefaults()
	trainData := model.TrainingPoints(data)
	_, span := progress.Start(ctx, "search.LearningRate", opts.Trials)
	defer span.End()
	result := Result{BestLoss: math.Inf(1)}
	objective := func(trial goptuna.Trial) (float64, error) {
		rate, err := trial.SuggestLogFloat("learning_rate", opts.MinRate, opts.MaxRate)
		if err != nil {
			return 0, errors.Trace(err)
		}
		params := init
		for i := 0; i < opts.StepsPerTrial; i++ {
			params = train.Step(trainData, params, rate, problem)
		}
		loss := problem.Loss(trainData, params)
		if math.IsNaN(loss) || math.IsInf(loss, 0) {
			loss = divergedLoss
		}
		result.Trials = append(result.Trials, Trial{Rate: rate, Loss: loss})
		if loss < result.BestLoss {
			result.BestLoss = loss
			result.BestRate = rate
		}
		log.Logger().Debug("learning rate trial",
			zap.Int("trial", len(result.Trials)),
			zap.Float64("learning_rate", rate),
			zap.Float64("train_loss", loss))
		span.Add(1)
		return loss, nil
	}
	study, err := goptuna.CreateStudy("learning-rate",
		goptuna.StudyOptionDirection(goptuna.StudyDirectionMinimize),
		goptuna.StudyOptionSampler(tpe.NewSampler()),
		goptuna.StudyOptionLogger(nil))
	if err != nil {
		return Result{}, errors.Trace(err)
	}
	if err = study.Optimize(objective, opts.Trials); err != nil {
		return Result{}, errors.Trace(err)
	}
	log.Logger().Info("learning rate search complete",
		zap.Float64("best_rate", result.BestRate),
		zap.Float64("best_loss", result.BestLoss),
		zap.Int("trials", len(result.Trials)))
	return result, nil
}

// Rates lists the evaluated rates in trial order.
func (r Result) Rates() []float64 {
	return lo.Map(r.Trials, func(t Trial, _ int) float64 { return t.Rate })
}
