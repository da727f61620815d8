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

func TestResourceFootprint(t *testing.T) {
	instanceType := sizer.InstanceType{
		Name:                "u1.medium",
		Guest:               resources.Resources{Memory: 4 * resources.GiB, CPUs: 1},
		ConsumedBySystem:    resources.Resources{Memory: 200 * resources.MiB, CPUs: 0},
		ReservedForOverhead: resources.Resources{Memory: 100 * resources.MiB, CPUs: 0},
	}

	footprint := instanceType.ResourceFootprint()

	assert.Equal(t, 4*resources.GiB+300*resources.MiB, footprint.Memory)
	assert.Equal(t, int64(1), footprint.CPUs)
}

func TestInstanceTypeValidate(t *testing.T) {
	tests := []struct {
		name         string
		instanceType sizer.InstanceType
		expectErr    bool
	}{
		{
			name: "usable type",
			instanceType: sizer.InstanceType{
				Name:  "u1.medium",
				Guest: resources.Resources{Memory: 4 * resources.GiB, CPUs: 1},
			},
		},
		{
			name: "no memory footprint",
			instanceType: sizer.InstanceType{
				Name:  "broken",
				Guest: resources.Resources{Memory: 0, CPUs: 1},
			},
			expectErr: true,
		},
		{
			name: "no cpu footprint",
			instanceType: sizer.InstanceType{
				Name:  "broken",
				Guest: resources.Resources{Memory: 4 * resources.GiB, CPUs: 0},
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.instanceType.Validate()

			if tt.expectErr {
				assert.ErrorIs(t, err, sizer.ErrInvalidInput)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHowManyFitInto(t *testing.T) {
	instanceType := sizer.InstanceType{
		Name:  "u1.medium",
		Guest: resources.Resources{Memory: 30, CPUs: 4},
	}

	tests := []struct {
		name             string
		available        resources.Resources
		expectCount      int64
		expectConstraint sizer.Constraint
	}{
		{
			name:             "cpu is the smaller bound",
			available:        resources.Resources{Memory: 100, CPUs: 10},
			expectCount:      2,
			expectConstraint: sizer.ConstrainedByCPU,
		},
		{
			name:             "memory is the smaller bound",
			available:        resources.Resources{Memory: 90, CPUs: 100},
			expectCount:      3,
			expectConstraint: sizer.ConstrainedByMemory,
		},
		{
			name:             "both bounds tie",
			available:        resources.Resources{Memory: 60, CPUs: 8},
			expectCount:      2,
			expectConstraint: sizer.ConstrainedByBoth,
		},
		{
			name:             "nothing available",
			available:        resources.Resources{},
			expectCount:      0,
			expectConstraint: sizer.ConstrainedByBoth,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate := sizer.ClusterResources{AvailableToWorkloads: tt.available}

			count, constraint, err := instanceType.HowManyFitInto(estimate)

			require.NoError(t, err)
			assert.Equal(t, tt.expectCount, count)
			assert.Equal(t, tt.expectConstraint, constraint)
		})
	}
}

func TestHowManyFitIntoRejectsEmptyFootprint(t *testing.T) {
	instanceType := sizer.InstanceType{Name: "empty"}
	estimate := sizer.ClusterResources{
		AvailableToWorkloads: resources.Resources{Memory: resources.GiB, CPUs: 1},
	}

	_, _, err := instanceType.HowManyFitInto(estimate)

	assert.ErrorIs(t, err, sizer.ErrInvalidInput)
}
