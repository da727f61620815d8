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
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabiand/v-sizer/pkg/sizer"
)

const fitUsage = `
Check how a workload relates to a cluster's estimated capacity.

Reports how many instances of the type would fit and which resource bounds
that number. With --vms the command additionally answers whether the whole
workload group fits, with the blocking constraint when it does not.
`

func newFitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit NODE INSTANCETYPE [flags]",
		Short: "Check workload fit",
		Long:  fitUsage,
		Example: strings.Join([]string{
			"  v-sizer fit worker-256 u1.medium --workers 3",
			"  v-sizer fit worker-256 'u1.*' --workers 3 --vms 100",
		}, "\n"),
		Args: cobra.ExactArgs(2),
		RunE: runFit,
	}

	cmd.Flags().Int64("workers", 3, "number of worker nodes")
	cmd.Flags().Int64("vms", 0, "size of the workload group to test")
	addTopologyFlags(cmd)

	return cmd
}

func runFit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	workers, _ := flags.GetInt64("workers")                   //nolint: errcheck
	controlPlanes, _ := flags.GetInt64("control-plane-nodes") //nolint: errcheck
	vmCount, _ := flags.GetInt64("vms")                       //nolint: errcheck
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

	cluster := sizer.Cluster{
		Topology:              topology,
		ControlPlaneNodeCount: controlPlanes,
		WorkerNodeCount:       workers,
	}

	estimate := cluster.Resources()

	capacity, constraint, err := instanceType.HowManyFitInto(estimate)
	if err != nil {
		return err
	}

	report := fitReport{
		Cluster:      cluster,
		InstanceType: instanceType.Name,
		Capacity:     capacity,
		Constraint:   constraint,
	}

	if vmCount > 0 {
		workloads := sizer.Workloads{VMCount: vmCount, InstanceType: instanceType}
		fits := workloads.CanFitInto(estimate)
		report.Workloads = &workloadFit{
			VMCount: vmCount,
			Fits:    fits.Result,
			Reasons: fits.Reasons,
		}
	}

	return outputFit(outputFormat, report)
}
