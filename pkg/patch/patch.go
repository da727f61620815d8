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

// Package patch writes measured overhead profiles back into node definition
// files. The update is line-based so comments, ordering and everything
// unrelated to the patched values survive byte-identically.
package patch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fabiand/v-sizer/pkg/sizer"

	"k8s.io/apimachinery/pkg/api/resource"

	"sigs.k8s.io/yaml"
)

// ApplyProfileToYaml replaces the consumedBySystem and reservedForOverhead
// quantities of a node definition with the profile's values, creating the
// sections if the definition never had them.
func ApplyProfileToYaml(yamlText string, profile sizer.Profile) (string, error) {
	var def struct {
		Kind string `json:"kind"`
	}

	if err := yaml.Unmarshal([]byte(yamlText), &def); err != nil {
		return "", fmt.Errorf("failed to parse definition: %w", err)
	}

	if def.Kind != "Node" {
		return "", fmt.Errorf("cannot apply a profile to kind %q", def.Kind)
	}

	for _, update := range []struct {
		section string
		memory  int64
		cpus    int64
	}{
		{"consumedBySystem", profile.ConsumedBySystem.Memory, profile.ConsumedBySystem.CPUs},
		{"reservedForOverhead", profile.ReservedForOverhead.Memory, profile.ReservedForOverhead.CPUs},
	} {
		var err error

		yamlText, err = applyValuePatch(yamlText, update.section, "memory", formatMemoryForYaml(update.memory))
		if err != nil {
			return "", err
		}

		yamlText, err = applyValuePatch(yamlText, update.section, "cpu", formatCPUForYaml(update.cpus))
		if err != nil {
			return "", err
		}
	}

	if !strings.HasSuffix(yamlText, "\n") {
		yamlText += "\n"
	}

	return yamlText, nil
}

func applyValuePatch(yamlText, section, key, newValue string) (string, error) {
	lines := strings.Split(yamlText, "\n")

	sectionLine, sectionIndent := findSection(lines, section)
	if sectionLine < 0 {
		lines = appendSection(lines, section, key, newValue)

		return strings.Join(lines, "\n"), nil
	}

	keyLine := findKeyLine(lines, sectionLine, sectionIndent, key)
	if keyLine >= 0 {
		indent := len(lines[keyLine]) - len(strings.TrimLeft(lines[keyLine], " \t"))
		lines[keyLine] = strings.Repeat(" ", indent) + key + ": " + newValue
	} else {
		insertPos := findInsertPosition(lines, sectionLine, sectionIndent)
		entry := strings.Repeat(" ", sectionIndent+2) + key + ": " + newValue
		lines = append(lines[:insertPos], append([]string{entry}, lines[insertPos:]...)...)
	}

	return strings.Join(lines, "\n"), nil
}

// findSection locates a top-level mapping key.
func findSection(lines []string, section string) (int, int) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		if indent == 0 && (trimmed == section+":" || strings.HasPrefix(trimmed, section+": ")) {
			return i, indent
		}
	}

	return -1, 0
}

func findKeyLine(lines []string, sectionLine, sectionIndent int, key string) int {
	for i := sectionLine + 1; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		indent := len(line) - len(strings.TrimLeft(line, " \t"))

		if trimmed != "" && indent <= sectionIndent {
			break
		}

		if strings.HasPrefix(trimmed, key+":") {
			return i
		}
	}

	return -1
}

// findInsertPosition returns the index right after the section's last
// non-empty line, so trailing blanks and following sections stay put.
func findInsertPosition(lines []string, sectionLine, sectionIndent int) int {
	insert := sectionLine + 1

	for i := sectionLine + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}

		indent := len(lines[i]) - len(strings.TrimLeft(lines[i], " \t"))
		if indent <= sectionIndent {
			break
		}

		insert = i + 1
	}

	return insert
}

func appendSection(lines []string, section, key, value string) []string {
	// Keep a trailing empty line at the end of the file.
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	inserted := []string{
		section + ":",
		"  " + key + ": " + value,
	}

	return append(lines[:end], append(inserted, lines[end:]...)...)
}

func formatMemoryForYaml(bytes int64) string {
	return resource.NewQuantity(bytes, resource.BinarySI).String()
}

func formatCPUForYaml(cores int64) string {
	return strconv.FormatInt(cores, 10)
}
