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

// Package sizer estimates the workload capacity of virtualization clusters
// and computes the minimum cluster needed to host a given set of workloads.
//
// All types are plain immutable values; every derivation is a pure function
// of its inputs.
package sizer

import (
	"github.com/fabiand/v-sizer/pkg/resources"
)

// Node is a physical or virtual machine template. Capacity is the raw
// advertised resource of one machine; ConsumedBySystem and
// ReservedForOverhead are what the host keeps for itself.
type Node struct {
	Description         string              `json:"description"`
	Capacity            resources.Resources `json:"capacity"`
	ConsumedBySystem    resources.Resources `json:"consumedBySystem"`
	ReservedForOverhead resources.Resources `json:"reservedForOverhead"`
}

// ComputeAllocatable returns the capacity actually available to workloads on
// one node. The result is negative when the reservations exceed capacity;
// callers report that as a deficit.
func (n Node) ComputeAllocatable() resources.Resources {
	return n.Capacity.Sub(n.ConsumedBySystem).Sub(n.ReservedForOverhead)
}

// Profile is an overhead policy: what every node of a cluster flavor loses
// to host processes and buffering. Substituting a different Profile changes
// the sizing results without touching aggregation or search logic.
type Profile struct {
	Name                string              `json:"name"`
	ConsumedBySystem    resources.Resources `json:"consumedBySystem"`
	ReservedForOverhead resources.Resources `json:"reservedForOverhead"`
}

// HyperConverged is the default overhead profile, measured on clusters that
// run storage alongside workloads. Such clusters see increased system
// resource consumption, and their storage layer benefits from larger
// page-cache buffers.
var HyperConverged = Profile{
	Name: "hyper-converged",
	ConsumedBySystem: resources.Resources{
		Memory: 20 * resources.GiB,
		CPUs:   8,
	},
	ReservedForOverhead: resources.Resources{
		Memory: 5 * resources.GiB,
		CPUs:   0,
	},
}

// NodeWithProfile builds a node template from a raw capacity and an
// overhead profile.
func NodeWithProfile(description string, capacity resources.Resources, profile Profile) Node {
	return Node{
		Description:         description,
		Capacity:            capacity,
		ConsumedBySystem:    profile.ConsumedBySystem,
		ReservedForOverhead: profile.ReservedForOverhead,
	}
}
