/*
Copyright 2026 The v-sizer Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

const rootCmdLongUsage = `
v-sizer estimates the workload capacity of virtualization clusters.

Given a node definition it reports how much compute and memory is left for
guest workloads after host-process and buffering overhead; given a workload
it computes the minimum cluster needed to host it, with one extra node
reserved for maintenance drains.
`

// Run executes the root command for the v-sizer CLI application.
func Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := cobra.Command{
		Use:          "v-sizer",
		Short:        "Estimate virtualization cluster capacity",
		Long:         rootCmdLongUsage,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("definitions", "definitions", "directory holding node and instance type definitions")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newEstimateCommand(),
		newFitCommand(),
		newSizeCommand(),
		newCalibrateCommand(),
		newVersionCmd(),
	)

	cmd.SetHelpCommand(&cobra.Command{}) // Disable the help command

	return cmd.ExecuteContext(ctx)
}
