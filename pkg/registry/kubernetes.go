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

package registry

import (
	"context"
	"fmt"

	"github.com/fabiand/v-sizer/pkg/sizer"

	v1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// NodeFromCluster builds a node template from a live cluster node instead of
// a definition file. Capacity comes from the node's advertised status;
// system consumption is derived as capacity minus allocatable, which is what
// the kubelet already reserves there. The buffering reservation is not
// observable from node status and is taken from the profile.
func NodeFromCluster(ctx context.Context, clientset kubernetes.Interface, nodeName string, profile sizer.Profile) (sizer.Node, error) {
	node, err := clientset.CoreV1().Nodes().Get(ctx, nodeName, metav1.GetOptions{})
	if err != nil {
		return sizer.Node{}, fmt.Errorf("failed to read node %q: %w", nodeName, err)
	}

	capacity, err := fromResourceList(filterCompute(node.Status.Capacity))
	if err != nil {
		return sizer.Node{}, fmt.Errorf("node %q capacity: %w", nodeName, err)
	}

	allocatable, err := fromResourceList(filterCompute(node.Status.Allocatable))
	if err != nil {
		return sizer.Node{}, fmt.Errorf("node %q allocatable: %w", nodeName, err)
	}

	return sizer.Node{
		Description:         fmt.Sprintf("%s (%s)", nodeName, node.Status.NodeInfo.KubeletVersion),
		Capacity:            capacity,
		ConsumedBySystem:    capacity.Sub(allocatable),
		ReservedForOverhead: profile.ReservedForOverhead,
	}, nil
}

// filterCompute drops the resource names the sizer does not track, such as
// pods and ephemeral storage.
func filterCompute(list v1.ResourceList) v1.ResourceList {
	filtered := v1.ResourceList{}

	for _, name := range []v1.ResourceName{v1.ResourceCPU, v1.ResourceMemory} {
		if quantity, ok := list[name]; ok {
			filtered[name] = quantity
		}
	}

	return filtered
}
