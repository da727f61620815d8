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

// Constraint names the resource that bounds a capacity estimate.
type Constraint string

const (
	// ConstrainedByMemory means the memory bound is the smaller one.
	ConstrainedByMemory Constraint = "memory"
	// ConstrainedByCPU means the cpu bound is the smaller one.
	ConstrainedByCPU Constraint = "cpu"
	// ConstrainedByBoth means both bounds tie.
	ConstrainedByBoth Constraint = "both"
)

// InstanceType describes the shape of one workload unit, for example
// "u1.medium". Guest is the capacity visible inside the instance;
// ConsumedBySystem and ReservedForOverhead are the additional host-side cost
// of running it.
type InstanceType struct {
	Name                string              `json:"name"`
	Guest               resources.Resources `json:"guest"`
	ConsumedBySystem    resources.Resources `json:"consumedBySystem"`
	ReservedForOverhead resources.Resources `json:"reservedForOverhead"`
}

// ResourceFootprint returns the true host-side cost of running one instance.
// It is component-wise at least the guest-visible capacity for any
// non-negative overhead.
func (t InstanceType) ResourceFootprint() resources.Resources {
	return t.Guest.Add(t.ConsumedBySystem).Add(t.ReservedForOverhead)
}

// Validate rejects instance types that would make capacity estimates divide
// by zero.
func (t InstanceType) Validate() error {
	footprint := t.ResourceFootprint()

	if footprint.Memory <= 0 {
		return fmt.Errorf("%w: instance type %q has no memory footprint", ErrInvalidInput, t.Name)
	}

	if footprint.CPUs <= 0 {
		return fmt.Errorf("%w: instance type %q has no cpu footprint", ErrInvalidInput, t.Name)
	}

	return nil
}

// HowManyFitInto estimates how many instances of this type the given cluster
// capacity can host, together with the constraining resource. The memory and
// cpu bounds are computed independently and the smaller one wins; a tie is
// reported as ConstrainedByBoth.
//
// This is a naive estimate. It ignores fragmentation, placement constraints
// and per-node bin-packing.
func (t InstanceType) HowManyFitInto(estimate ClusterResources) (int64, Constraint, error) {
	if err := t.Validate(); err != nil {
		return 0, "", err
	}

	footprint := t.ResourceFootprint()
	available := estimate.AvailableToWorkloads

	// Truncation toward zero is the wanted floor for the usual positive case.
	byMemory := int64(float64(available.Memory) / float64(footprint.Memory))
	byCPU := int64(float64(available.CPUs) / float64(footprint.CPUs))

	switch {
	case byMemory < byCPU:
		return byMemory, ConstrainedByMemory, nil
	case byCPU < byMemory:
		return byCPU, ConstrainedByCPU, nil
	}

	return byMemory, ConstrainedByBoth, nil
}
