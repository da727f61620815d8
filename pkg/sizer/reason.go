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

// Reasoned pairs a decision or value with the ordered justification trail
// that produced it. Reasons are append-only.
type Reasoned[T any] struct {
	Result  T        `json:"result"`
	Reasons []string `json:"reasons,omitempty"`
}

// AddReason appends a justification to the trail.
func (r *Reasoned[T]) AddReason(reason string) {
	r.Reasons = append(r.Reasons, reason)
}

// AddDistinctReason appends a justification unless it is already present.
// Used by iterative callers that would otherwise repeat themselves.
func (r *Reasoned[T]) AddDistinctReason(reason string) {
	for _, existing := range r.Reasons {
		if existing == reason {
			return
		}
	}

	r.Reasons = append(r.Reasons, reason)
}
