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

package resources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabiand/v-sizer/pkg/resources"
)

func TestAddSubRoundtrip(t *testing.T) {
	tests := []struct {
		name string
		a    resources.Resources
		b    resources.Resources
	}{
		{
			name: "plain quantities",
			a:    resources.Resources{Memory: 256 * resources.GiB, CPUs: 128},
			b:    resources.Resources{Memory: 20 * resources.GiB, CPUs: 8},
		},
		{
			name: "deficit producing",
			a:    resources.Resources{Memory: 4 * resources.GiB, CPUs: 1},
			b:    resources.Resources{Memory: 40 * resources.GiB, CPUs: 64},
		},
		{
			name: "zero",
			a:    resources.Resources{},
			b:    resources.Resources{Memory: 200 * resources.MiB, CPUs: 1},
		},
		{
			name: "vcpus on both sides",
			a:    resources.Resources{Memory: resources.GiB, CPUs: 2}.WithVCPUs(20),
			b:    resources.Resources{Memory: resources.GiB, CPUs: 4}.WithVCPUs(40),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.a, tt.a.Add(tt.b).Sub(tt.b))
			assert.Equal(t, tt.b, tt.a.Add(tt.b).Sub(tt.a))
		})
	}
}

func TestSubMayGoNegative(t *testing.T) {
	a := resources.Resources{Memory: 40 * resources.GiB, CPUs: 10}
	b := resources.Resources{Memory: 50 * resources.GiB, CPUs: 50}

	deficit := a.Sub(b)

	assert.Equal(t, int64(-10*resources.GiB), deficit.Memory)
	assert.Equal(t, int64(-40), deficit.CPUs)
}

func TestVCPUsCombination(t *testing.T) {
	tracked := resources.Resources{CPUs: 0}.WithVCPUs(4)
	untracked := resources.Resources{CPUs: 0}

	tests := []struct {
		name   string
		result resources.Resources
		expect *int64
	}{
		{
			name:   "one side tracked propagates",
			result: tracked.Add(untracked),
			expect: ptr(4),
		},
		{
			name:   "other side tracked propagates",
			result: untracked.Add(tracked),
			expect: ptr(4),
		},
		{
			name:   "propagation through sub",
			result: untracked.Sub(tracked),
			expect: ptr(4),
		},
		{
			name:   "both tracked combine",
			result: tracked.Add(tracked),
			expect: ptr(8),
		},
		{
			name:   "both tracked subtract",
			result: tracked.Sub(tracked),
			expect: ptr(0),
		},
		{
			name:   "neither tracked stays untracked",
			result: untracked.Add(untracked),
			expect: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.result.VCPUs)
		})
	}
}

func TestScale(t *testing.T) {
	base := resources.Resources{Memory: 4 * resources.GiB, CPUs: 8}

	scaled := base.Scale(100)

	assert.Equal(t, int64(400*resources.GiB), scaled.Memory)
	assert.Equal(t, int64(800), scaled.CPUs)
	assert.Nil(t, scaled.VCPUs, "scaling must not invent a vcpu figure")

	withVCPUs := base.WithVCPUs(80).Scale(3)
	require.NotNil(t, withVCPUs.VCPUs)
	assert.Equal(t, int64(240), *withVCPUs.VCPUs)

	assert.Equal(t, resources.Resources{}, base.Scale(0))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		memory    string
		cpus      string
		expect    resources.Resources
		expectErr bool
	}{
		{
			name:   "binary units",
			memory: "256Gi",
			cpus:   "128",
			expect: resources.Resources{Memory: 256 * resources.GiB, CPUs: 128},
		},
		{
			name:   "mebibytes",
			memory: "200Mi",
			cpus:   "1",
			expect: resources.Resources{Memory: 200 * resources.MiB, CPUs: 1},
		},
		{
			name:      "garbage memory",
			memory:    "lots",
			cpus:      "1",
			expectErr: true,
		},
		{
			name:      "garbage cpu",
			memory:    "1Gi",
			cpus:      "a few",
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resources.Parse(tt.memory, tt.cpus)

			if tt.expectErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expect, res)
		})
	}
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "4.0 GiB", resources.FormatMemory(4*resources.GiB))
	assert.Equal(t, "-4.0 GiB", resources.FormatMemory(-4*resources.GiB))
}

func ptr(v int64) *int64 {
	return &v
}
