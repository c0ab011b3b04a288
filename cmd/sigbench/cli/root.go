// Copyright (c) 2021-2024 SigScalr, Inc.
//
// This file is part of SigLens Observability Solution
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/siglens/sigbench/pkg/config"
	"github.com/spf13/cobra"
)

// errNotEqual makes the process exit with status 1 without printing an error.
var errNotEqual = errors.New("signatures not equal")

func NewRootCmd() *cobra.Command {
	var configPath string
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "sigbench",
		Short: "signature comparison benchmarks",
		Long:  `Compare D-Bus type signatures ignoring one layer of outer parentheses, and benchmark the comparison`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := config.InitConfigurationData(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config %v: %v", configPath, err)
			}
			if debug {
				config.SetDebugMode(true)
			}
			return initLogger()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Use -h to see available commands")
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to yaml config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newStripCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newFixturesCmd())
	rootCmd.AddCommand(newRunCmd())

	return rootCmd
}

func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNotEqual) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
