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

package sizer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ReasonDrainHeadroom explains the extra node every sized cluster carries.
const ReasonDrainHeadroom = "One worker node was added beyond the minimal fit, so a full node can be drained for maintenance without losing workload capacity."

const (
	defaultControlPlaneNodeCount = 3
	defaultMaxWorkerNodes        = 1024
)

// SizeOptions tunes the minimum-cluster search.
type SizeOptions struct {
	// ControlPlaneNodeCount is the fixed control-plane size of the sized
	// cluster. Zero selects the HA default of 3.
	ControlPlaneNodeCount int64

	// MaxWorkerNodes bounds the search. Zero selects the default of 1024.
	// Exceeding the bound fails with ErrUnsatisfiable.
	MaxWorkerNodes int64

	// Logger receives per-iteration diagnostics. Nil disables logging.
	Logger *zap.Logger
}

func (o SizeOptions) withDefaults() SizeOptions {
	if o.ControlPlaneNodeCount == 0 {
		o.ControlPlaneNodeCount = defaultControlPlaneNodeCount
	}

	if o.MaxWorkerNodes == 0 {
		o.MaxWorkerNodes = defaultMaxWorkerNodes
	}

	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

// ForTopologyAndWorkloads computes the smallest cluster of the given
// topology that hosts the workloads, plus one extra worker node reserved as
// drain headroom.
//
// The search starts at zero worker nodes and grows the cluster one node at a
// time. Each iteration evaluates the fit at the current count and then
// increments unconditionally, so when the fit first succeeds at count N the
// returned cluster has N+1 workers.
//
// A workload that cannot fit at any size fails with ErrUnsatisfiable rather
// than looping: either immediately, when growing the cluster gains nothing
// in a deficient dimension, or at the MaxWorkerNodes bound. Cancelling the
// context aborts the search with the context's error.
func ForTopologyAndWorkloads(ctx context.Context, topology ClusterTopology, workloads Workloads, opts SizeOptions) (Reasoned[Cluster], error) {
	opts = opts.withDefaults()
	logger := opts.Logger.With(zap.String("component", "sizing"))

	var sized Reasoned[Cluster]

	if err := topology.Validate(); err != nil {
		return sized, err
	}

	if err := workloads.InstanceType.Validate(); err != nil {
		return sized, err
	}

	if workloads.VMCount < 0 {
		return sized, fmt.Errorf("%w: negative vm count %d", ErrInvalidInput, workloads.VMCount)
	}

	cluster := Cluster{
		Topology:              topology,
		ControlPlaneNodeCount: opts.ControlPlaneNodeCount,
		WorkerNodeCount:       0,
	}

	for {
		if err := ctx.Err(); err != nil {
			return sized, err
		}

		estimate := cluster.Resources()
		fits := workloads.CanFitInto(estimate)

		logger.Debug("Evaluated cluster size",
			zap.Int64("worker_nodes", cluster.WorkerNodeCount),
			zap.Bool("fits", fits.Result),
			zap.Strings("reasons", fits.Reasons),
		)

		for _, reason := range fits.Reasons {
			sized.AddDistinctReason(reason)
		}

		// The increment is unconditional: the final cluster carries one
		// node beyond the minimal fit.
		cluster.WorkerNodeCount++

		if fits.Result {
			break
		}

		if stuck(cluster, estimate, workloads) {
			return sized, fmt.Errorf("%w: workloads %s gain nothing from additional %q nodes",
				ErrUnsatisfiable, workloads, topology.WorkerNode.Description)
		}

		if cluster.WorkerNodeCount > opts.MaxWorkerNodes {
			return sized, fmt.Errorf("%w: workloads %s do not fit within %d worker nodes",
				ErrUnsatisfiable, workloads, opts.MaxWorkerNodes)
		}
	}

	sized.Result = cluster
	sized.AddReason(ReasonDrainHeadroom)

	logger.Info("Sized cluster for workloads",
		zap.Int64("worker_nodes", cluster.WorkerNodeCount),
		zap.Int64("control_plane_nodes", cluster.ControlPlaneNodeCount),
	)

	return sized, nil
}

// stuck reports whether growing the cluster cannot close the remaining
// deficit: the workload needs more of a resource than the current estimate
// offers, while another worker node adds none of it.
func stuck(cluster Cluster, estimate ClusterResources, workloads Workloads) bool {
	gain := cluster.Topology.WorkerNode.ComputeAllocatable()
	required := workloads.RequiredResources()
	available := estimate.AvailableToWorkloads

	if available.Memory < required.Memory && gain.Memory <= 0 {
		return true
	}

	if available.CPUs < required.CPUs && gain.CPUs <= 0 {
		return true
	}

	return false
}
