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

	"github.com/fabiand/v-sizer/pkg/resources"
	"github.com/fabiand/v-sizer/pkg/sizer"
)

func mediumVMs(count int64) sizer.Workloads {
	return sizer.Workloads{
		VMCount: count,
		InstanceType: sizer.InstanceType{
			Name:  "u1.medium",
			Guest: resources.Resources{Memory: 4 * resources.GiB, CPUs: 1},
		},
	}
}

func TestRequiredResources(t *testing.T) {
	required := mediumVMs(100).RequiredResources()

	assert.Equal(t, resources.Resources{Memory: 400 * resources.GiB, CPUs: 100}, required)
}

func TestCanFitInto(t *testing.T) {
	tests := []struct {
		name          string
		available     resources.Resources
		workloads     sizer.Workloads
		expectFit     bool
		expectReasons []string
	}{
		{
			name:      "fits with room to spare",
			available: resources.Resources{Memory: 500 * resources.GiB, CPUs: 150},
			workloads: mediumVMs(100),
			expectFit: true,
		},
		{
			name:      "fits exactly",
			available: resources.Resources{Memory: 400 * resources.GiB, CPUs: 100},
			workloads: mediumVMs(100),
			expectFit: true,
		},
		{
			name:      "memory constrained",
			available: resources.Resources{Memory: 390 * resources.GiB, CPUs: 150},
			workloads: mediumVMs(100),
			expectReasons: []string{
				sizer.ReasonMemoryConstrained,
				"short by 10 GiB of memory",
			},
		},
		{
			name:      "cpu constrained",
			available: resources.Resources{Memory: 400 * resources.GiB, CPUs: 40},
			workloads: mediumVMs(100),
			expectReasons: []string{
				sizer.ReasonCPUConstrained,
				"short by 60 cpus",
			},
		},
		{
			name:      "both constrained reports memory first",
			available: resources.Resources{Memory: 390 * resources.GiB, CPUs: 40},
			workloads: mediumVMs(100),
			expectReasons: []string{
				sizer.ReasonMemoryConstrained,
				"short by 10 GiB of memory",
			},
		},
		{
			name:      "no workloads always fit",
			available: resources.Resources{},
			workloads: mediumVMs(0),
			expectFit: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit := tt.workloads.CanFitInto(sizer.ClusterResources{AvailableToWorkloads: tt.available})

			assert.Equal(t, tt.expectFit, fit.Result)
			assert.Equal(t, tt.expectReasons, fit.Reasons)
		})
	}
}

func TestCanFitIntoIgnoresVCPUs(t *testing.T) {
	// The derived vcpu figure never gates a fit; physical cpus do.
	available := resources.Resources{Memory: 400 * resources.GiB, CPUs: 100}.WithVCPUs(1)

	fit := mediumVMs(100).CanFitInto(sizer.ClusterResources{AvailableToWorkloads: available})

	assert.True(t, fit.Result)
	assert.Empty(t, fit.Reasons)
}
