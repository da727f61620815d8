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

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/fabiand/v-sizer/pkg/registry"
	"github.com/fabiand/v-sizer/pkg/sizer"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

func addTopologyFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("control-plane-nodes", 3, "number of control plane nodes")
	cmd.Flags().Bool("schedulable-control-plane", false, "control plane nodes also host workloads")
	cmd.Flags().Float64("cpu-overcommit", 0.1, "fraction of a physical core backing one vCPU")
	cmd.Flags().String("control-plane-node", "", "node definition for control plane nodes (defaults to the worker node)")
	cmd.Flags().Bool("from-cluster", false, "resolve the node from the current kubeconfig cluster instead of the definitions directory")
	cmd.Flags().String("kubeconfig", "", "path to the kubeconfig file (with --from-cluster)")
}

func newLogger(flags *pflag.FlagSet) *zap.Logger {
	verbose, _ := flags.GetBool("verbose") //nolint: errcheck
	if !verbose {
		return zap.NewNop()
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

func loadRegistry(flags *pflag.FlagSet) (*registry.Registry, error) {
	dir, _ := flags.GetString("definitions") //nolint: errcheck

	return registry.Load(dir)
}

// resolveWorkerNode resolves the worker node template either from the
// definitions directory or, with --from-cluster, from a live cluster node.
func resolveWorkerNode(ctx context.Context, flags *pflag.FlagSet, name string) (sizer.Node, error) {
	fromCluster, _ := flags.GetBool("from-cluster") //nolint: errcheck

	if !fromCluster {
		reg, err := loadRegistry(flags)
		if err != nil {
			return sizer.Node{}, err
		}

		return reg.Node(name)
	}

	kubeconfig, _ := flags.GetString("kubeconfig") //nolint: errcheck

	clientset, err := newKubernetesClient(kubeconfig)
	if err != nil {
		return sizer.Node{}, err
	}

	return registry.NodeFromCluster(ctx, clientset, name, sizer.HyperConverged)
}

// topologyFromFlags builds and validates the cluster topology. The control
// plane defaults to the worker node template.
func topologyFromFlags(flags *pflag.FlagSet, worker sizer.Node) (sizer.ClusterTopology, error) {
	schedulable, _ := flags.GetBool("schedulable-control-plane") //nolint: errcheck
	overcommit, _ := flags.GetFloat64("cpu-overcommit")          //nolint: errcheck

	controlPlane := worker

	if name, _ := flags.GetString("control-plane-node"); name != "" { //nolint: errcheck
		reg, err := loadRegistry(flags)
		if err != nil {
			return sizer.ClusterTopology{}, err
		}

		controlPlane, err = reg.Node(name)
		if err != nil {
			return sizer.ClusterTopology{}, err
		}
	}

	topology := sizer.ClusterTopology{
		SchedulableControlPlane: schedulable,
		ControlPlaneNode:        controlPlane,
		WorkerNode:              worker,
		CPUOverCommitRatio:      overcommit,
	}

	return topology, topology.Validate()
}

func newKubernetesClient(kubeconfig string) (*kubernetes.Clientset, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		loadingRules.ExplicitPath = kubeconfig
	}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return clientset, nil
}
