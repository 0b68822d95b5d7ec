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

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/descent-io/descent/base"
	"github.com/descent-io/descent/base/log"
	"github.com/descent-io/descent/model"
	"github.com/descent-io/descent/search"
)

func init() {
	rootCommand.AddCommand(tuneCommand)
	dataFlags(tuneCommand)
	tuneCommand.Flags().Int("trials", 0, "number of search trials")
	tuneCommand.Flags().Int("steps", 0, "descent steps per trial")
}

var tuneCommand = &cobra.Command{
	Use:   "tune",
	Short: "Search for a good learning rate.",
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.Root().PersistentFlags(), debug)
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tag, err := conf.ProblemType()
		if err != nil {
			return err
		}

		rng := base.NewRandomGenerator(conf.Data.Seed)
		problem := model.NewProblem(tag)
		data := problem.GenerateData(rng, conf.Data.NumPoints, conf.Data.TrainRatio, conf.Data.NoiseLevel)
		trials, _ := cmd.Flags().GetInt("trials")
		steps, _ := cmd.Flags().GetInt("steps")
		result, err := search.LearningRate(cmd.Context(), problem, data, model.RandomParameters(rng), search.Options{
			Trials:        trials,
			StepsPerTrial: steps,
		})
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"#", "Learning Rate", "Train Loss"})
		for i, trial := range result.Trials {
			table.Append([]string{
				fmt.Sprintf("%v", i),
				fmt.Sprintf("%.6g", trial.Rate),
				fmt.Sprintf("%.6g", trial.Loss),
			})
		}
		table.Render()
		fmt.Printf("best learning rate: %.6g (train loss %.6g)\n", result.BestRate, result.BestLoss)
		return nil
	},
}
