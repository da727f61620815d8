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

// Package registry loads node and instance-type definitions from disk and
// resolves them by name or glob pattern.
//
// Definitions are small YAML or JSON documents, one per file, discriminated
// by a kind field. Quantities use the Kubernetes notation ("256Gi", "128");
// parsing happens here, at the configuration boundary, and the core only
// ever sees canonical byte and core counts.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/fabiand/v-sizer/pkg/resources"
	"github.com/fabiand/v-sizer/pkg/sizer"

	v1 "k8s.io/api/core/v1"

	"sigs.k8s.io/yaml"
)

// ErrNotFound marks a definition name or pattern that resolves to nothing.
var ErrNotFound = errors.New("definition not found")

const (
	kindNode         = "Node"
	kindInstanceType = "InstanceType"
)

// definition is the on-disk schema shared by both kinds.
type definition struct {
	Kind                string          `json:"kind"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	Capacity            v1.ResourceList `json:"capacity,omitempty"`
	Guest               v1.ResourceList `json:"guest,omitempty"`
	ConsumedBySystem    v1.ResourceList `json:"consumedBySystem,omitempty"`
	ReservedForOverhead v1.ResourceList `json:"reservedForOverhead,omitempty"`
}

// Registry resolves named node and instance-type definitions.
type Registry struct {
	nodes         map[string]sizer.Node
	instanceTypes map[string]sizer.InstanceType
}

// Load reads all *.yaml, *.yml and *.json definitions in dir.
func Load(dir string) (*Registry, error) {
	reg := &Registry{
		nodes:         map[string]sizer.Node{},
		instanceTypes: map[string]sizer.InstanceType{},
	}

	var files []string

	for _, pattern := range []string{"*.yaml", "*.yml", "*.json"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}

		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no definitions found in %q", dir)
	}

	sort.Strings(files)

	for _, file := range files {
		if err := reg.loadFile(file); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func (r *Registry) loadFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var def definition
	if err := yaml.UnmarshalStrict(data, &def); err != nil {
		return fmt.Errorf("failed to parse definition %q: %w", file, err)
	}

	if def.Name == "" {
		return fmt.Errorf("definition %q has no name", file)
	}

	switch def.Kind {
	case kindNode:
		node, err := def.toNode()
		if err != nil {
			return fmt.Errorf("definition %q: %w", file, err)
		}

		r.nodes[def.Name] = node
	case kindInstanceType:
		instanceType, err := def.toInstanceType()
		if err != nil {
			return fmt.Errorf("definition %q: %w", file, err)
		}

		r.instanceTypes[def.Name] = instanceType
	default:
		return fmt.Errorf("definition %q has unknown kind %q", file, def.Kind)
	}

	return nil
}

func (d definition) toNode() (sizer.Node, error) {
	capacity, err := fromResourceList(d.Capacity)
	if err != nil {
		return sizer.Node{}, fmt.Errorf("capacity: %w", err)
	}

	consumed, err := fromResourceList(d.ConsumedBySystem)
	if err != nil {
		return sizer.Node{}, fmt.Errorf("consumedBySystem: %w", err)
	}

	overhead, err := fromResourceList(d.ReservedForOverhead)
	if err != nil {
		return sizer.Node{}, fmt.Errorf("reservedForOverhead: %w", err)
	}

	description := d.Description
	if description == "" {
		description = d.Name
	}

	return sizer.Node{
		Description:         description,
		Capacity:            capacity,
		ConsumedBySystem:    consumed,
		ReservedForOverhead: overhead,
	}, nil
}

func (d definition) toInstanceType() (sizer.InstanceType, error) {
	guest, err := fromResourceList(d.Guest)
	if err != nil {
		return sizer.InstanceType{}, fmt.Errorf("guest: %w", err)
	}

	consumed, err := fromResourceList(d.ConsumedBySystem)
	if err != nil {
		return sizer.InstanceType{}, fmt.Errorf("consumedBySystem: %w", err)
	}

	overhead, err := fromResourceList(d.ReservedForOverhead)
	if err != nil {
		return sizer.InstanceType{}, fmt.Errorf("reservedForOverhead: %w", err)
	}

	instanceType := sizer.InstanceType{
		Name:                d.Name,
		Guest:               guest,
		ConsumedBySystem:    consumed,
		ReservedForOverhead: overhead,
	}

	return instanceType, instanceType.Validate()
}

// fromResourceList converts Kubernetes cpu/memory quantities to canonical
// counts. Absent entries are zero.
func fromResourceList(list v1.ResourceList) (resources.Resources, error) {
	var res resources.Resources

	for name, quantity := range list {
		switch name {
		case v1.ResourceMemory:
			res.Memory = quantity.Value()
		case v1.ResourceCPU:
			res.CPUs = quantity.Value()
		default:
			return res, fmt.Errorf("unsupported resource %q", name)
		}
	}

	return res, nil
}

// Node resolves a node definition by exact name, falling back to glob
// matching. An ambiguous pattern resolves to the lexicographically first
// match.
func (r *Registry) Node(name string) (sizer.Node, error) {
	if node, ok := r.nodes[name]; ok {
		return node, nil
	}

	if match, ok := firstMatch(r.nodes, name); ok {
		return r.nodes[match], nil
	}

	return sizer.Node{}, fmt.Errorf("%w: node %q (have %v)", ErrNotFound, name, r.NodeNames())
}

// InstanceType resolves an instance-type definition by exact name, falling
// back to glob matching.
func (r *Registry) InstanceType(name string) (sizer.InstanceType, error) {
	if instanceType, ok := r.instanceTypes[name]; ok {
		return instanceType, nil
	}

	if match, ok := firstMatch(r.instanceTypes, name); ok {
		return r.instanceTypes[match], nil
	}

	return sizer.InstanceType{}, fmt.Errorf("%w: instance type %q (have %v)", ErrNotFound, name, r.InstanceTypeNames())
}

// NodeNames lists the registered node definitions, sorted.
func (r *Registry) NodeNames() []string {
	return sortedKeys(r.nodes)
}

// InstanceTypeNames lists the registered instance-type definitions, sorted.
func (r *Registry) InstanceTypeNames() []string {
	return sortedKeys(r.instanceTypes)
}

func firstMatch[T any](items map[string]T, pattern string) (string, bool) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return "", false
	}

	for _, name := range sortedKeys(items) {
		if matcher.Match(name) {
			return name, true
		}
	}

	return "", false
}

func sortedKeys[T any](items map[string]T) []string {
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
