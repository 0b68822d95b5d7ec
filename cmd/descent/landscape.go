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

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/descent-io/descent/base"
	"github.com/descent-io/descent/base/log"
	"github.com/descent-io/descent/landscape"
	"github.com/descent-io/descent/model"
	"github.com/descent-io/descent/render"
)

func init() {
	rootCommand.AddCommand(landscapeCommand)
	dataFlags(landscapeCommand)
	landscapeCommand.Flags().Int("resolution", 0, "samples per axis of the loss grid")
	landscapeCommand.Flags().StringP("output", "o", "landscape.png", "output image path")
}

var landscapeCommand = &cobra.Command{
	Use:   "landscape",
	Short: "Render the loss landscape of a synthetic dataset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.Root().PersistentFlags(), debug)
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if resolution, _ := cmd.Flags().GetInt("resolution"); resolution > 0 {
			conf.Landscape.Resolution = resolution
			conf.Validate()
		}
		tag, err := conf.ProblemType()
		if err != nil {
			return err
		}

		rng := base.NewRandomGenerator(conf.Data.Seed)
		problem := model.NewProblem(tag)
		data := problem.GenerateData(rng, conf.Data.NumPoints, conf.Data.TrainRatio, conf.Data.NoiseLevel)
		span := landscape.Range{Min: conf.Landscape.RangeMin, Max: conf.Landscape.RangeMax}
		grid := landscape.Sample(cmd.Context(), model.TrainingPoints(data), problem, conf.Landscape.Resolution, span)
		arrows := landscape.VectorField(cmd.Context(), model.TrainingPoints(data), problem,
			conf.Landscape.ArrowResolution, span)
		log.Logger().Info("landscape sampled",
			zap.String("problem", string(tag)),
			zap.Int("resolution", grid.Resolution()),
			zap.Float64("min_loss", grid.MinLoss()),
			zap.Float64("max_loss", grid.MaxLoss()))

		target := problem.TrueParameters()
		p, err := render.Landscape(grid, render.LandscapeOptions{
			NumLevels: conf.Landscape.NumLevels,
			Arrows:    arrows,
			Target:    &target,
		})
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		return render.Save(p, output)
	},
}
