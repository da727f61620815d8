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

	"github.com/fabiand/v-sizer/pkg/resources"
)

// Fit-test reason tags. The first blocking constraint wins: memory is
// checked before cpu, and a simultaneous violation is reported as memory.
const (
	ReasonMemoryConstrained = "memory-constrained"
	ReasonCPUConstrained    = "cpu-constrained"
)

// Workloads is a homogeneous group of VM instances of a single instance
// type. Heterogeneous groups are deliberately out of scope; model them as
// multiple Workloads values.
type Workloads struct {
	VMCount      int64        `json:"vmCount"`
	InstanceType InstanceType `json:"instanceType"`
}

// RequiredResources returns the guest-visible capacity the group needs.
func (w Workloads) RequiredResources() resources.Resources {
	return w.InstanceType.Guest.Scale(w.VMCount)
}

// CanFitInto decides whether the group fits into the given cluster capacity.
// A failed fit carries the blocking constraint tag followed by the deficit,
// so a caller can report "short by X".
//
// The derived vCPU figure is not gated here; only memory and physical cpus
// decide the fit.
func (w Workloads) CanFitInto(estimate ClusterResources) Reasoned[bool] {
	required := w.RequiredResources()
	available := estimate.AvailableToWorkloads

	fit := Reasoned[bool]{Result: true}

	if available.Memory < required.Memory {
		fit.Result = false
		fit.AddReason(ReasonMemoryConstrained)
		fit.AddReason(fmt.Sprintf("short by %s of memory", resources.FormatMemory(required.Memory-available.Memory)))

		return fit
	}

	if available.CPUs < required.CPUs {
		fit.Result = false
		fit.AddReason(ReasonCPUConstrained)
		fit.AddReason(fmt.Sprintf("short by %d cpus", required.CPUs-available.CPUs))

		return fit
	}

	return fit
}

// String renders the workload group for humans.
func (w Workloads) String() string {
	return fmt.Sprintf("%d x %s (%s each)", w.VMCount, w.InstanceType.Name, w.InstanceType.Guest)
}
