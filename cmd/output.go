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
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fabiand/v-sizer/pkg/resources"
	"github.com/fabiand/v-sizer/pkg/sizer"

	"sigs.k8s.io/yaml"
)

const none = "<none>"

type estimateReport struct {
	Cluster   sizer.Cluster          `json:"cluster"`
	Resources sizer.ClusterResources `json:"resources"`
}

type fitReport struct {
	Cluster      sizer.Cluster    `json:"cluster"`
	InstanceType string           `json:"instanceType"`
	Capacity     int64            `json:"capacity"`
	Constraint   sizer.Constraint `json:"constraint"`
	Workloads    *workloadFit     `json:"workloads,omitempty"`
}

type workloadFit struct {
	VMCount int64    `json:"vmCount"`
	Fits    bool     `json:"fits"`
	Reasons []string `json:"reasons,omitempty"`
}

type sizedReport struct {
	Workloads sizer.Workloads        `json:"workloads"`
	Cluster   sizer.Cluster          `json:"cluster"`
	Resources sizer.ClusterResources `json:"resources"`
	Reasons   []string               `json:"reasons"`
}

func outputEstimate(format string, cluster sizer.Cluster, estimate sizer.ClusterResources) error {
	report := estimateReport{Cluster: cluster, Resources: estimate}

	switch format {
	case "json":
		return outputJSON(report)
	case "yaml":
		return outputYAML(report)
	}

	fmt.Printf("\nCLUSTER: %s\n\n", cluster)

	return estimateTable(estimate)
}

func estimateTable(estimate sizer.ClusterResources) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\tMEMORY\tCPUS\tVCPUS\n")
	fmt.Fprintf(w, "Consumed by system\t%s\n", formatResourceRow(estimate.ConsumedBySystem))
	fmt.Fprintf(w, "Reserved for overhead\t%s\n", formatResourceRow(estimate.ReservedForOverhead))
	fmt.Fprintf(w, "Available to workloads\t%s\n", formatResourceRow(estimate.AvailableToWorkloads))

	return w.Flush()
}

func outputFit(format string, report fitReport) error {
	switch format {
	case "json":
		return outputJSON(report)
	case "yaml":
		return outputYAML(report)
	}

	fmt.Printf("\nCLUSTER: %s\n\n", report.Cluster)
	fmt.Printf("Up to %d instances of %s fit, constrained by %s.\n", report.Capacity, report.InstanceType, report.Constraint)

	if report.Workloads != nil {
		if report.Workloads.Fits {
			fmt.Printf("A group of %d instances fits.\n", report.Workloads.VMCount)
		} else {
			fmt.Printf("A group of %d instances does not fit:\n", report.Workloads.VMCount)
			printReasons(report.Workloads.Reasons)
		}
	}

	return nil
}

func outputSized(format string, workloads sizer.Workloads, sized sizer.Reasoned[sizer.Cluster]) error {
	report := sizedReport{
		Workloads: workloads,
		Cluster:   sized.Result,
		Resources: sized.Result.Resources(),
		Reasons:   sized.Reasons,
	}

	switch format {
	case "json":
		return outputJSON(report)
	case "yaml":
		return outputYAML(report)
	}

	fmt.Printf("\nWORKLOADS: %s\n", workloads)
	fmt.Printf("CLUSTER: %s\n\n", report.Cluster)

	if err := estimateTable(report.Resources); err != nil {
		return err
	}

	fmt.Printf("\nREASONING:\n")
	printReasons(report.Reasons)

	return nil
}

func outputProfile(format string, profile sizer.Profile) error {
	switch format {
	case "json":
		return outputJSON(profile)
	case "yaml":
		return outputYAML(profile)
	}

	fmt.Printf("\nPROFILE: %s\n\n", profile.Name)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\tMEMORY\tCPUS\n")
	fmt.Fprintf(w, "Consumed by system\t%s\t%d\n", resources.FormatMemory(profile.ConsumedBySystem.Memory), profile.ConsumedBySystem.CPUs)
	fmt.Fprintf(w, "Reserved for overhead\t%s\t%d\n", resources.FormatMemory(profile.ReservedForOverhead.Memory), profile.ReservedForOverhead.CPUs)

	return w.Flush()
}

func outputJSON(report any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(report)
}

func outputYAML(report any) error {
	yamlData, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	fmt.Print(string(yamlData))

	return nil
}

func formatResourceRow(res resources.Resources) string {
	vcpus := none
	if res.VCPUs != nil {
		vcpus = fmt.Sprintf("%d", *res.VCPUs)
	}

	return fmt.Sprintf("%s\t%d\t%s", resources.FormatMemory(res.Memory), res.CPUs, vcpus)
}

func printReasons(reasons []string) {
	for _, reason := range reasons {
		fmt.Printf("  - %s\n", reason)
	}
}
