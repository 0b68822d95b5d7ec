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

package config

import (
	"go.uber.org/zap"

	"github.com/descent-io/descent/base"
	"github.com/descent-io/descent/base/log"
	"github.com/descent-io/descent/landscape"
	"github.com/descent-io/descent/train"
)

// Validate clamps recoverable out-of-range values in place, warning for
// each clamp. Invalid configuration is never fatal.
func (config *Config) Validate() {
	config.Data.NumPoints = clampInt("data.num_points", config.Data.NumPoints, 1, 1<<20)
	config.Data.TrainRatio = clampFloat("data.train_ratio", config.Data.TrainRatio, 0.05, 0.95)
	config.Data.NoiseLevel = clampFloat("data.noise_level", config.Data.NoiseLevel, 0, 100)
	config.Train.LearningRate = clampFloat("train.learning_rate", config.Train.LearningRate,
		train.MinLearningRate, train.MaxLearningRate)
	config.Train.TotalSteps = clampInt("train.total_steps", config.Train.TotalSteps, 1, 1<<20)
	config.Train.TickPeriodMs = clampInt("train.tick_period_ms", config.Train.TickPeriodMs, 1, 60000)
	config.Landscape.Resolution = clampInt("landscape.resolution", config.Landscape.Resolution,
		landscape.MinResolution, landscape.MaxResolution)
	config.Landscape.ArrowResolution = clampInt("landscape.arrow_resolution", config.Landscape.ArrowResolution,
		landscape.MinResolution, landscape.MaxResolution)
	config.Landscape.NumLevels = clampInt("landscape.num_levels", config.Landscape.NumLevels, 1, 100)
	if config.Landscape.RangeMin >= config.Landscape.RangeMax {
		log.Logger().Warn("empty value of `landscape.range_min`..`landscape.range_max`, using default range",
			zap.Float64("range_min", config.Landscape.RangeMin),
			zap.Float64("range_max", config.Landscape.RangeMax))
		defaults := (*LandscapeConfig)(nil).LoadDefaultIfNil()
		config.Landscape.RangeMin = defaults.RangeMin
		config.Landscape.RangeMax = defaults.RangeMax
	}
}

func clampInt(name string, val, low, high int) int {
	clamped := base.ClipInt(val, low, high)
	if clamped != val {
		log.Logger().Warn("value of `"+name+"` is out of range, clamped",
			zap.Int("value", val), zap.Int("clamped", clamped))
	}
	return clamped
}

func clampFloat(name string, val, low, high float64) float64 {
	clamped := base.Clip(val, low, high)
	if clamped != val {
		log.Logger().Warn("value of `"+name+"` is out of range, clamped",
			zap.Float64("value", val), zap.Float64("clamped", clamped))
	}
	return clamped
}
