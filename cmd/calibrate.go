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
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	v1prometheus "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/spf13/cobra"

	"github.com/fabiand/v-sizer/pkg/metrics"
	"github.com/fabiand/v-sizer/pkg/patch"
)

const calibrateUsage = `
Measure an overhead profile from a running cluster's Prometheus and apply it
to a node definition file.

Without --write the measured profile is only printed. With --write the
definition file's consumedBySystem and reservedForOverhead values are
updated in place; everything else in the file is left untouched.
`

func newCalibrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate FILE [flags]",
		Short: "Measure an overhead profile",
		Long:  calibrateUsage,
		Example: strings.Join([]string{
			"  v-sizer calibrate definitions/worker-256.yaml --prometheus-url http://prometheus:9090",
			"  v-sizer calibrate definitions/worker-256.yaml --prometheus-url http://prometheus:9090 --write",
		}, "\n"),
		Args: cobra.ExactArgs(1),
		RunE: runCalibrate,
	}

	cmd.Flags().String("prometheus-url", "", "Prometheus server URL (e.g., http://prometheus:9090)")
	cmd.Flags().String("system-namespaces", metrics.DefaultSystemNamespaces, "namespace pattern billed as system consumption")
	cmd.Flags().Bool("write", false, "update the definition file in place")

	_ = cmd.MarkFlagRequired("prometheus-url")

	return cmd
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	file := args[0]
	prometheusURL, _ := flags.GetString("prometheus-url")       //nolint: errcheck
	systemNamespaces, _ := flags.GetString("system-namespaces") //nolint: errcheck
	write, _ := flags.GetBool("write")                          //nolint: errcheck
	outputFormat, _ := flags.GetString("output")                //nolint: errcheck

	promClient, err := api.NewClient(api.Config{
		Address: prometheusURL,
		RoundTripper: &http.Transport{
			IdleConnTimeout: 30 * time.Second,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Prometheus client: %w", err)
	}

	profile, err := metrics.ProfileFromPrometheus(ctx, v1prometheus.NewAPI(promClient), systemNamespaces)
	if err != nil {
		return err
	}

	if !write {
		return outputProfile(outputFormat, profile)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	patched, err := patch.ApplyProfileToYaml(string(data), profile)
	if err != nil {
		return err
	}

	if err := os.WriteFile(file, []byte(patched), 0o644); err != nil {
		return err
	}

	fmt.Printf("Updated %s with the measured profile\n", file)

	return nil
}
