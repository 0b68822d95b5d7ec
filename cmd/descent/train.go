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
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/descent-io/descent/base/log"
	"github.com/descent-io/descent/config"
	"github.com/descent-io/descent/landscape"
	"github.com/descent-io/descent/model"
	"github.com/descent-io/descent/render"
	"github.com/descent-io/descent/train"
)

func init() {
	rootCommand.AddCommand(trainCommand)
	dataFlags(trainCommand)
	trainCommand.Flags().Float64("learning-rate", 0, "learning rate of gradient descent")
	trainCommand.Flags().Int("steps", 0, "number of descent steps")
	trainCommand.Flags().String("plot-dir", "", "write data, loss and landscape plots into this directory")
	trainCommand.Flags().Int("tail", 5, "number of trailing history rows to print")
}

var trainCommand = &cobra.Command{
	Use:   "train",
	Short: "Run gradient descent on a synthetic dataset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.Root().PersistentFlags(), debug)
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if _, err = conf.ProblemType(); err != nil {
			return err
		}

		session := train.NewSession(conf.SessionConfig(), nil)
		bar := progressbar.Default(int64(conf.Train.TotalSteps), "Training")
		previous := session.Parameters()
		for i := 0; i < conf.Train.TotalSteps; i++ {
			if err = session.Advance(1); err != nil {
				return err
			}
			_ = bar.Add(1)
			next := session.Parameters()
			if train.HasConverged(previous, next, train.DefaultConvergenceThreshold) {
				break
			}
			previous = next
		}
		_ = bar.Finish()

		view := session.Snapshot()
		log.Logger().Info("training complete",
			zap.Int("steps", view.Step),
			zap.Float64("train_loss", view.TrainLoss),
			zap.Float64("test_loss", view.TestLoss))
		printHistoryTail(session, lo.Must(cmd.Flags().GetInt("tail")))

		if plotDir, _ := cmd.Flags().GetString("plot-dir"); plotDir != "" {
			return writePlots(cmd, session, conf, plotDir)
		}
		return nil
	},
}

func printHistoryTail(session *train.Session, tail int) {
	points := session.History()
	if tail < 0 {
		tail = 0
	}
	if tail < len(points) {
		points = points[len(points)-tail:]
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Step", "a", "b", "Train Loss", "Test Loss"})
	for _, point := range points {
		table.Append([]string{
			fmt.Sprintf("%v", point.Step),
			fmt.Sprintf("%.4f", point.Parameters.A),
			fmt.Sprintf("%.4f", point.Parameters.B),
			fmt.Sprintf("%.6f", point.TrainLoss),
			fmt.Sprintf("%.6f", point.TestLoss),
		})
	}
	table.Render()
}

func writePlots(cmd *cobra.Command, session *train.Session, conf *config.Config, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dataPlot, err := render.Data(session.Problem(), session.Data(), session.Parameters())
	if err != nil {
		return err
	}
	if err = render.Save(dataPlot, filepath.Join(dir, "data.png")); err != nil {
		return err
	}

	lossPlot, err := render.LossCurves(session.History())
	if err != nil {
		return err
	}
	if err = render.Save(lossPlot, filepath.Join(dir, "loss.png")); err != nil {
		return err
	}

	span := landscape.Range{Min: conf.Landscape.RangeMin, Max: conf.Landscape.RangeMax}
	grid := session.Landscape(cmd.Context(), conf.Landscape.Resolution, span)
	arrows := landscape.VectorField(cmd.Context(), session.Data(), session.Problem(), conf.Landscape.ArrowResolution, span)
	current := session.Parameters()
	target := session.Problem().TrueParameters()
	surface, err := render.Landscape(grid, render.LandscapeOptions{
		NumLevels: conf.Landscape.NumLevels,
		Arrows:    arrows,
		Path: lo.Map(session.History(), func(p train.HistoryPoint, _ int) model.Parameters {
			return p.Parameters
		}),
		Current: &current,
		Target:  &target,
	})
	if err != nil {
		return err
	}
	if err = render.Save(surface, filepath.Join(dir, "landscape.png")); err != nil {
		return err
	}
	log.Logger().Info("plots written", zap.String("dir", dir))
	return nil
}
