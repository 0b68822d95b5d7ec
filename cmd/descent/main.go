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

	"github.com/spf13/cobra"

	"github.com/descent-io/descent/base/log"
	"github.com/descent-io/descent/cmd/version"
	"github.com/descent-io/descent/config"
)

var rootCommand = &cobra.Command{
	Use:   "descent",
	Short: "An interactive playground for gradient descent.",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}
		_ = cmd.Help()
	},
}

func init() {
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().BoolP("version", "v", false, "build version")
	log.AddFlags(rootCommand.PersistentFlags())
}

// loadConfig reads the config file named by the persistent flag, falling
// back to defaults, and applies per-command overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("problem") {
		conf.Data.Problem, _ = cmd.Flags().GetString("problem")
	}
	if cmd.Flags().Changed("points") {
		conf.Data.NumPoints, _ = cmd.Flags().GetInt("points")
	}
	if cmd.Flags().Changed("noise") {
		conf.Data.NoiseLevel, _ = cmd.Flags().GetFloat64("noise")
	}
	if cmd.Flags().Changed("seed") {
		conf.Data.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("learning-rate") {
		conf.Train.LearningRate, _ = cmd.Flags().GetFloat64("learning-rate")
	}
	if cmd.Flags().Changed("steps") {
		conf.Train.TotalSteps, _ = cmd.Flags().GetInt("steps")
	}
	conf.Validate()
	return conf, nil
}

// dataFlags registers the dataset overrides shared by the subcommands.
func dataFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("problem", "p", "", "problem variant (linear, logistic or polynomial)")
	cmd.Flags().Int("points", 0, "number of generated data points")
	cmd.Flags().Float64("noise", -1, "noise level of the generated data")
	cmd.Flags().Int64("seed", 0, "random seed of data generation and initialization")
}

func main() {
	defer log.CloseLogger()
	if err := rootCommand.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
