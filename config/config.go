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

// Package config loads the TOML configuration of the playground.
package config

import (
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/viper"

	"github.com/descent-io/descent/model"
	"github.com/descent-io/descent/train"
)

// Config is the configuration of a descent session.
type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	Train     TrainConfig     `mapstructure:"train"`
	Landscape LandscapeConfig `mapstructure:"landscape"`
}

func (config *Config) LoadDefaultIfNil() *Config {
	if config == nil {
		return &Config{
			Data:      *(*DataConfig)(nil).LoadDefaultIfNil(),
			Train:     *(*TrainConfig)(nil).LoadDefaultIfNil(),
			Landscape: *(*LandscapeConfig)(nil).LoadDefaultIfNil(),
		}
	}
	return config
}

// DataConfig controls synthetic data generation.
type DataConfig struct {
	Problem    string  `mapstructure:"problem"`
	NumPoints  int     `mapstructure:"num_points"`
	TrainRatio float64 `mapstructure:"train_ratio"`
	NoiseLevel float64 `mapstructure:"noise_level"`
	Seed       int64   `mapstructure:"seed"`
}

func (c *DataConfig) LoadDefaultIfNil() *DataConfig {
	if c == nil {
		return &DataConfig{
			Problem:    string(model.Linear),
			NumPoints:  30,
			TrainRatio: 0.8,
			NoiseLevel: 0.5,
		}
	}
	return c
}

// TrainConfig controls the gradient descent run.
type TrainConfig struct {
	LearningRate float64 `mapstructure:"learning_rate"`
	TotalSteps   int     `mapstructure:"total_steps"`
	TickPeriodMs int     `mapstructure:"tick_period_ms"`
}

func (c *TrainConfig) LoadDefaultIfNil() *TrainConfig {
	if c == nil {
		return &TrainConfig{
			LearningRate: 0.1,
			TotalSteps:   100,
			TickPeriodMs: 50,
		}
	}
	return c
}

// LandscapeConfig controls loss-landscape sampling and rendering.
type LandscapeConfig struct {
	Resolution      int     `mapstructure:"resolution"`
	ArrowResolution int     `mapstructure:"arrow_resolution"`
	NumLevels       int     `mapstructure:"num_levels"`
	RangeMin        float64 `mapstructure:"range_min"`
	RangeMax        float64 `mapstructure:"range_max"`
}

func (c *LandscapeConfig) LoadDefaultIfNil() *LandscapeConfig {
	if c == nil {
		return &LandscapeConfig{
			Resolution:      60,
			ArrowResolution: 12,
			NumLevels:       10,
			RangeMin:        model.ParameterMin,
			RangeMax:        model.ParameterMax,
		}
	}
	return c
}

// Load reads a TOML config file. A missing path yields the defaults.
func Load(path string) (*Config, error) {
	config := (*Config)(nil).LoadDefaultIfNil()
	if path == "" {
		return config, nil
	}
	viper.SetConfigType("toml")
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Trace(err)
	}
	config.Validate()
	return config, nil
}

// ProblemType resolves the configured problem tag. Unknown tags are an
// error at this boundary rather than a panic: they come from user input.
func (config *Config) ProblemType() (model.ProblemType, error) {
	tag := model.ProblemType(strings.ToLower(config.Data.Problem))
	for _, known := range model.ProblemTypes {
		if tag == known {
			return tag, nil
		}
	}
	return "", errors.Errorf("unknown problem %q", config.Data.Problem)
}

// SessionConfig maps the configuration onto a training session.
func (config *Config) SessionConfig() train.Config {
	return train.Config{
		Problem:      model.ProblemType(strings.ToLower(config.Data.Problem)),
		NumPoints:    config.Data.NumPoints,
		TrainRatio:   config.Data.TrainRatio,
		NoiseLevel:   config.Data.NoiseLevel,
		LearningRate: config.Train.LearningRate,
		TotalSteps:   config.Train.TotalSteps,
		TickPeriod:   time.Duration(config.Train.TickPeriodMs) * time.Millisecond,
		Seed:         config.Data.Seed,
	}
}
