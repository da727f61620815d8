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
	"fmt"
	"math"

	"github.com/fabiand/v-sizer/pkg/resources"
)

// ClusterTopology describes the shape of a cluster independent of its size:
// the node templates it is built from, whether control-plane nodes also host
// workloads, and the CPU overcommit policy.
//
// CPUOverCommitRatio is the fraction of a physical core backing one virtual
// core; 0.1 means one physical core backs 10 vCPUs.
type ClusterTopology struct {
	SchedulableControlPlane bool    `json:"schedulableControlPlane"`
	ControlPlaneNode        Node    `json:"controlPlaneNode"`
	WorkerNode              Node    `json:"workerNode"`
	CPUOverCommitRatio      float64 `json:"cpuOverCommitRatio"`
}

// Validate rejects topologies the sizer cannot reason about.
func (t ClusterTopology) Validate() error {
	if t.CPUOverCommitRatio <= 0 || t.CPUOverCommitRatio > 1 {
		return fmt.Errorf("%w: cpu overcommit ratio %v is outside (0, 1]", ErrInvalidInput, t.CPUOverCommitRatio)
	}

	return nil
}

// Cluster is a sized instantiation of a topology.
type Cluster struct {
	Topology              ClusterTopology `json:"topology"`
	ControlPlaneNodeCount int64           `json:"controlPlaneNodeCount"`
	WorkerNodeCount       int64           `json:"workerNodeCount"`
}

// ClusterResources is a derived, point-in-time view of where a cluster's
// capacity goes. It is recomputed on demand and never persisted.
type ClusterResources struct {
	ConsumedBySystem     resources.Resources `json:"consumedBySystem"`
	ReservedForOverhead  resources.Resources `json:"reservedForOverhead"`
	AvailableToWorkloads resources.Resources `json:"availableToWorkloads"`
}

// Resources computes the cluster's aggregate resource split.
//
// The worker node's system consumption, overhead reservation and allocatable
// capacity are scaled by the worker count. With a schedulable control plane
// the control-plane nodes contribute additional workload capacity but also
// additional overhead, so their scaled quantities are added to all three
// totals.
//
// The workload-available figure is annotated with the derived vCPU count,
// floor(cpus / overcommit ratio). This is the only place a vCPU figure is
// created; everywhere else it only propagates through arithmetic.
func (c Cluster) Resources() ClusterResources {
	worker := c.Topology.WorkerNode

	consumed := worker.ConsumedBySystem.Scale(c.WorkerNodeCount)
	overhead := worker.ReservedForOverhead.Scale(c.WorkerNodeCount)
	available := worker.ComputeAllocatable().Scale(c.WorkerNodeCount)

	if c.Topology.SchedulableControlPlane {
		controlPlane := c.Topology.ControlPlaneNode

		consumed = consumed.Add(controlPlane.ConsumedBySystem.Scale(c.ControlPlaneNodeCount))
		overhead = overhead.Add(controlPlane.ReservedForOverhead.Scale(c.ControlPlaneNodeCount))
		available = available.Add(controlPlane.ComputeAllocatable().Scale(c.ControlPlaneNodeCount))
	}

	if ratio := c.Topology.CPUOverCommitRatio; ratio > 0 {
		available = available.WithVCPUs(int64(math.Floor(float64(available.CPUs) / ratio)))
	}

	return ClusterResources{
		ConsumedBySystem:     consumed,
		ReservedForOverhead:  overhead,
		AvailableToWorkloads: available,
	}
}

// String renders the cluster shape for humans.
func (c Cluster) String() string {
	return fmt.Sprintf("%d worker nodes (%s), %d control-plane nodes (schedulable: %v)",
		c.WorkerNodeCount,
		c.Topology.WorkerNode.Description,
		c.ControlPlaneNodeCount,
		c.Topology.SchedulableControlPlane)
}
