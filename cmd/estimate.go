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

const estimateUsage = `
Estimate the aggregate resources of a cluster built from a node definition.

The report splits the cluster's raw capacity into what host processes
consume, what is reserved for buffering, and what remains available to
guest workloads, including the vCPU capacity after overcommit.
`

func newEstimateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate NODE [flags]",
		Short: "Estimate cluster capacity",
		Long:  estimateUsage,
		Example: strings.Join([]string{
			"  v-sizer estimate worker-256 --workers 3",
			"  v-sizer estimate 'worker-*' --workers 5 --schedulable-control-plane",
			"  v-sizer estimate node01 --from-cluster --workers 10 -o json",
		}, "\n"),
		Args: cobra.ExactArgs(1),
		RunE: runEstimate,
	}

	cmd.Flags().Int64("workers", 3, "number of worker nodes")
	addTopologyFlags(cmd)

	return cmd
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	workers, _ := flags.GetInt64("workers")                   //nolint: errcheck
	controlPlanes, _ := flags.GetInt64("control-plane-nodes") //nolint: errcheck
	outputFormat, _ := flags.GetString("output")              //nolint: errcheck

	worker, err := resolveWorkerNode(ctx, flags, args[0])
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

	return outputEstimate(outputFormat, cluster, cluster.Resources())
}
