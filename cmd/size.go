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
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabiand/v-sizer/pkg/sizer"
)

const sizeUsage = `
Compute the minimum cluster that hosts a workload.

The search grows the worker count until the workload fits, then adds one
more node so a full node can be drained for maintenance without losing
workload capacity. A workload that cannot fit at any size fails with exit
code 2 instead of searching forever.
`

func newSizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size NODE INSTANCETYPE [flags]",
		Short: "Size a cluster for a workload",
		Long:  sizeUsage,
		Example: strings.Join([]string{
			"  v-sizer size worker-256 u1.medium --vms 100",
			"  v-sizer size worker-256 u1.medium --vms 100 --schedulable-control-plane -o yaml",
		}, "\n"),
		Args: cobra.ExactArgs(2),
		RunE: runSize,
	}

	cmd.Flags().Int64("vms", 1, "size of the workload group")
	cmd.Flags().Int64("max-workers", 0, "bound on the searched worker count (0 uses the built-in default)")
	addTopologyFlags(cmd)

	return cmd
}

func runSize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	vmCount, _ := flags.GetInt64("vms")                       //nolint: errcheck
	maxWorkers, _ := flags.GetInt64("max-workers")            //nolint: errcheck
	controlPlanes, _ := flags.GetInt64("control-plane-nodes") //nolint: errcheck
	outputFormat, _ := flags.GetString("output")              //nolint: errcheck

	worker, err := resolveWorkerNode(ctx, flags, args[0])
	if err != nil {
		return err
	}

	reg, err := loadRegistry(flags)
	if err != nil {
		return err
	}

	instanceType, err := reg.InstanceType(args[1])
	if err != nil {
		return err
	}

	topology, err := topologyFromFlags(flags, worker)
	if err != nil {
		return err
	}

	workloads := sizer.Workloads{VMCount: vmCount, InstanceType: instanceType}

	sized, err := sizer.ForTopologyAndWorkloads(ctx, topology, workloads, sizer.SizeOptions{
		ControlPlaneNodeCount: controlPlanes,
		MaxWorkerNodes:        maxWorkers,
		Logger:                newLogger(flags),
	})
	if err != nil {
		if errors.Is(err, sizer.ErrUnsatisfiable) {
			return Error{Code: ExitUnsatisfiable, Err: err}
		}

		return err
	}

	return outputSized(outputFormat, workloads, sized)
}
