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

// Package metrics measures overhead profiles from a running cluster.
//
// A built-in profile is a guess; a measured one reflects what the host
// processes of a concrete cluster actually request. The queries aggregate
// per-node system requests and reclaimable page-cache bytes, the same
// figures the built-in hyper-converged constants were derived from.
package metrics

import (
	"context"
	"fmt"
	"time"

	v1prometheus "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/fabiand/v-sizer/pkg/resources"
	"github.com/fabiand/v-sizer/pkg/sizer"
)

// DefaultSystemNamespaces selects the namespaces whose requests count as
// system consumption.
const DefaultSystemNamespaces = "openshift-.*|kube-.*"

const (
	consumedMemoryQuery = `sum(kube_pod_container_resource_requests{namespace=~"%s",resource="memory"}) / count(kube_node_info)`
	consumedCPUQuery    = `sum(kube_pod_container_resource_requests{namespace=~"%s",resource="cpu"}) / count(kube_node_info)`
	overheadMemoryQuery = `avg(sum by (instance) (node_memory_SReclaimable_bytes + node_memory_KReclaimable_bytes))`
)

// ProfileFromPrometheus measures a per-node overhead profile. The
// systemNamespaces pattern scopes which namespaces are billed to the system;
// an empty pattern selects DefaultSystemNamespaces.
//
// Measured values are rounded up to coarse increments (whole GiB, whole
// cores) so a profile stays a conservative reservation rather than a noisy
// point sample.
func ProfileFromPrometheus(ctx context.Context, prometheusClient v1prometheus.API, systemNamespaces string) (sizer.Profile, error) {
	if systemNamespaces == "" {
		systemNamespaces = DefaultSystemNamespaces
	}

	consumedMemory, err := queryScalar(ctx, prometheusClient, fmt.Sprintf(consumedMemoryQuery, systemNamespaces))
	if err != nil {
		return sizer.Profile{}, fmt.Errorf("failed to measure per-node memory consumption: %w", err)
	}

	consumedCPU, err := queryScalar(ctx, prometheusClient, fmt.Sprintf(consumedCPUQuery, systemNamespaces))
	if err != nil {
		return sizer.Profile{}, fmt.Errorf("failed to measure per-node cpu consumption: %w", err)
	}

	overheadMemory, err := queryScalar(ctx, prometheusClient, overheadMemoryQuery)
	if err != nil {
		return sizer.Profile{}, fmt.Errorf("failed to measure reclaimable buffers: %w", err)
	}

	return sizer.Profile{
		Name: "measured",
		ConsumedBySystem: resources.Resources{
			Memory: roundUpMemory(consumedMemory),
			CPUs:   roundUpCores(consumedCPU),
		},
		ReservedForOverhead: resources.Resources{
			Memory: roundUpMemory(overheadMemory),
		},
	}, nil
}

func queryScalar(ctx context.Context, prometheusClient v1prometheus.API, query string) (float64, error) {
	result, _, err := prometheusClient.Query(ctx, query, time.Now())
	if err != nil {
		return 0, err
	}

	vector, ok := result.(model.Vector)
	if !ok || len(vector) == 0 {
		return 0, fmt.Errorf("query %q returned no samples", query)
	}

	return float64(vector[0].Value), nil
}

func roundUpMemory(bytes float64) int64 {
	increment := resources.GiB
	if bytes <= 0 {
		return 0
	}

	return ((int64(bytes) + increment - 1) / increment) * increment
}

func roundUpCores(cores float64) int64 {
	if cores <= 0 {
		return 0
	}

	whole := int64(cores)
	if float64(whole) < cores {
		whole++
	}

	return whole
}
