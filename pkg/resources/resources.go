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

// Package resources implements the arithmetic value type the sizer is built on.
//
// A Resources value is a quantity of compute capacity: a canonical byte count
// for memory and a physical core count for CPUs. Arithmetic is plain signed
// integer arithmetic; a negative result is a deficit, not an error, and is
// reported as such by the callers that care.
package resources

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"k8s.io/apimachinery/pkg/api/resource"
)

// Convenience multipliers for literal byte quantities.
const (
	MiB int64 = 1024 * 1024
	GiB int64 = 1024 * MiB
)

// Resources is a quantity of compute capacity. Memory is a canonical byte
// count; unit-aware formatting happens only at presentation boundaries.
//
// VCPUs is a derived quantity that only exists once a CPU overcommit ratio
// has been applied. A nil VCPUs means "not tracked", which is distinct from
// zero: arithmetic must not invent a vCPU figure from plain core counts.
type Resources struct {
	Memory int64  `json:"memory"`
	CPUs   int64  `json:"cpus"`
	VCPUs  *int64 `json:"vcpus,omitempty"`
}

// WithVCPUs returns a copy of r carrying the given vCPU figure.
func (r Resources) WithVCPUs(vcpus int64) Resources {
	r.VCPUs = &vcpus

	return r
}

// Add returns the field-wise sum of r and other.
func (r Resources) Add(other Resources) Resources {
	return Resources{
		Memory: r.Memory + other.Memory,
		CPUs:   r.CPUs + other.CPUs,
		VCPUs:  combineVCPUs(r.VCPUs, other.VCPUs, func(a, b int64) int64 { return a + b }),
	}
}

// Sub returns the field-wise difference of r and other. The result may be
// negative, signaling a deficit.
func (r Resources) Sub(other Resources) Resources {
	return Resources{
		Memory: r.Memory - other.Memory,
		CPUs:   r.CPUs - other.CPUs,
		VCPUs:  combineVCPUs(r.VCPUs, other.VCPUs, func(a, b int64) int64 { return a - b }),
	}
}

// Scale multiplies all tracked fields by a non-negative count.
func (r Resources) Scale(count int64) Resources {
	scaled := Resources{
		Memory: r.Memory * count,
		CPUs:   r.CPUs * count,
	}

	if r.VCPUs != nil {
		v := *r.VCPUs * count
		scaled.VCPUs = &v
	}

	return scaled
}

// combineVCPUs applies op when both sides track vCPUs, propagates the tracked
// side when only one does, and yields untracked otherwise.
func combineVCPUs(a, b *int64, op func(int64, int64) int64) *int64 {
	switch {
	case a != nil && b != nil:
		v := op(*a, *b)

		return &v
	case a != nil:
		v := *a

		return &v
	case b != nil:
		v := *b

		return &v
	}

	return nil
}

// FromQuantities builds a Resources value from parsed Kubernetes quantities.
func FromQuantities(memory, cpus resource.Quantity) Resources {
	return Resources{
		Memory: memory.Value(),
		CPUs:   cpus.Value(),
	}
}

// Parse builds a Resources value from quantity strings such as "256Gi" and
// "128". Intended for configuration boundaries, not arithmetic.
func Parse(memory, cpus string) (Resources, error) {
	mem, err := resource.ParseQuantity(memory)
	if err != nil {
		return Resources{}, fmt.Errorf("invalid memory quantity %q: %w", memory, err)
	}

	cpu, err := resource.ParseQuantity(cpus)
	if err != nil {
		return Resources{}, fmt.Errorf("invalid cpu quantity %q: %w", cpus, err)
	}

	return FromQuantities(mem, cpu), nil
}

// String renders the quantity human-readably. Display only.
func (r Resources) String() string {
	s := fmt.Sprintf("%s memory, %d cpus", FormatMemory(r.Memory), r.CPUs)
	if r.VCPUs != nil {
		s += fmt.Sprintf(", %d vcpus", *r.VCPUs)
	}

	return s
}

// FormatMemory renders a byte count in IEC units, keeping the sign of a
// deficit visible.
func FormatMemory(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}

	return humanize.IBytes(uint64(bytes))
}
