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

package cmd

// Error carries an exit code alongside the failure so main can report
// distinguishable outcomes to callers such as scripts.
type Error struct {
	Code int
	Err  error
}

func (e Error) Error() string {
	return e.Err.Error()
}

func (e Error) Unwrap() error {
	return e.Err
}

// Exit codes beyond the generic failure.
const (
	// ExitUnsatisfiable is returned when a workload cannot fit into any
	// cluster built from the given topology.
	ExitUnsatisfiable = 2
)
