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

import "errors"

var (
	// ErrInvalidInput marks configuration values the sizer refuses to work
	// with, such as a non-positive overcommit ratio or an instance type
	// whose footprint would divide by zero.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsatisfiable marks a workload that no finite cluster built from
	// the given topology can host.
	ErrUnsatisfiable = errors.New("unsatisfiable capacity")
)
