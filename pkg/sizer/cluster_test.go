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

package sizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiand/v-sizer/pkg/resources"
	"github.com/fabiand/v-sizer/pkg/sizer"
)

// workerNode is the shared fixture: a 256Gi / 128 core machine carrying the
// hyper-converged overhead, so each node offers 231Gi and 120 cpus to
// workloads.
func workerNode() sizer.Node {
	return sizer.NodeWithProfile(
		"worker-256",
		resources.Resources{Memory: 256 * resources.GiB, CPUs: 128},
		sizer.HyperConverged,
	)
}

func TestComputeAllocatable(t *testing.T) {
	allocatable := workerNode().ComputeAllocatable()

	assert.Equal(t, int64(231*resources.GiB), allocatable.Memory)
	assert.Equal(t, int64(120), allocatable.CPUs)
}

func TestComputeAllocatableGoesNegativeWhenOversubscribed(t *testing.T) {
	node := sizer.NodeWithProfile(
		"edge-16",
		resources.Resources{Memory: 16 * resources.GiB, CPUs: 16},
		sizer.HyperConverged,
	)

	allocatable := node.ComputeAllocatable()

	assert.Equal(t, int64(-9*resources.GiB), allocatable.Memory)
	assert.Equal(t, int64(8), allocatable.CPUs)
}

func TestClusterResources(t *testing.T) {
	cluster := sizer.Cluster{
		Topology: sizer.ClusterTopology{
			ControlPlaneNode:   workerNode(),
			WorkerNode:         workerNode(),
			CPUOverCommitRatio: 0.25,
		},
		ControlPlaneNodeCount: 3,
		WorkerNodeCount:       3,
	}

	estimate := cluster.Resources()

	assert.Equal(t, resources.Resources{Memory: 60 * resources.GiB, CPUs: 24}, estimate.ConsumedBySystem)
	assert.Equal(t, resources.Resources{Memory: 15 * resources.GiB, CPUs: 0}, estimate.ReservedForOverhead)

	available := estimate.AvailableToWorkloads
	assert.Equal(t, int64(693*resources.GiB), available.Memory)
	assert.Equal(t, int64(360), available.CPUs)

	require.NotNil(t, available.VCPUs, "overcommit must derive a vcpu figure")
	assert.Equal(t, int64(1440), *available.VCPUs)
}

func TestClusterResourcesSchedulableControlPlane(t *testing.T) {
	topology := sizer.ClusterTopology{
		ControlPlaneNode:   workerNode(),
		WorkerNode:         workerNode(),
		CPUOverCommitRatio: 0.5,
	}
	cluster := sizer.Cluster{
		Topology:              topology,
		ControlPlaneNodeCount: 3,
		WorkerNodeCount:       3,
	}

	workersOnly := cluster.Resources()

	cluster.Topology.SchedulableControlPlane = true
	combined := cluster.Resources()

	// With an identical node template and count the contribution doubles.
	assert.Equal(t, workersOnly.ConsumedBySystem.Scale(2), combined.ConsumedBySystem)
	assert.Equal(t, workersOnly.ReservedForOverhead.Scale(2), combined.ReservedForOverhead)
	assert.Equal(t, workersOnly.AvailableToWorkloads.Memory*2, combined.AvailableToWorkloads.Memory)
	assert.Equal(t, workersOnly.AvailableToWorkloads.CPUs*2, combined.AvailableToWorkloads.CPUs)
}

func TestClusterResourcesEmptyCluster(t *testing.T) {
	cluster := sizer.Cluster{
		Topology: sizer.ClusterTopology{
			ControlPlaneNode:   workerNode(),
			WorkerNode:         workerNode(),
			CPUOverCommitRatio: 1,
		},
		ControlPlaneNodeCount: 3,
		WorkerNodeCount:       0,
	}

	estimate := cluster.Resources()

	// Non-schedulable control-plane nodes contribute nothing.
	assert.Equal(t, int64(0), estimate.AvailableToWorkloads.Memory)
	assert.Equal(t, int64(0), estimate.AvailableToWorkloads.CPUs)
	require.NotNil(t, estimate.AvailableToWorkloads.VCPUs)
	assert.Equal(t, int64(0), *estimate.AvailableToWorkloads.VCPUs)
}

func TestTopologyValidate(t *testing.T) {
	topology := sizer.ClusterTopology{
		ControlPlaneNode: workerNode(),
		WorkerNode:       workerNode(),
	}

	for _, ratio := range []float64{0.1, 0.5, 1} {
		topology.CPUOverCommitRatio = ratio
		assert.NoError(t, topology.Validate())
	}

	for _, ratio := range []float64{0, -0.5, 1.5} {
		topology.CPUOverCommitRatio = ratio
		assert.ErrorIs(t, topology.Validate(), sizer.ErrInvalidInput)
	}
}
