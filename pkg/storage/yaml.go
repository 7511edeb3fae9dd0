// Package storage reads and writes the project's endpoints file and the
// variable files it draws substitutions from.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gqlpad/gqlpad/pkg/endpoint"
)

const (
	// EndpointsFileName is the endpoints document inside the workspace dir.
	EndpointsFileName = "endpoints.yaml"

	// VariablesFileName is the optional substitution variables file.
	VariablesFileName = "variables.yaml"
)

// EndpointsPath returns the endpoints file path under baseDir.
func EndpointsPath(baseDir string) string {
	return filepath.Join(baseDir, EndpointsFileName)
}

// VariablesPath returns the variables file path under baseDir.
func VariablesPath(baseDir string) string {
	return filepath.Join(baseDir, VariablesFileName)
}

// LoadEndpoints reads, validates, and expands the endpoints file. Variables
// from vars and from the process environment are substituted into URLs and
// option values. The order of entries in the file is preserved.
func LoadEndpoints(filePath string, vars map[string]string) ([]endpoint.Endpoint, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoints file: %w", err)
	}

	if err := ValidateEndpoints(data); err != nil {
		return nil, err
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse endpoints YAML: %w", err)
	}

	endpoints := make([]endpoint.Endpoint, 0, len(file.Endpoints))
	for _, entry := range file.Endpoints {
		expanded := expandEntry(entry, vars)
		endpoints = append(endpoints, endpoint.Endpoint{
			Name:    expanded.Name,
			URL:     expanded.URL,
			Options: expanded.Options,
		})
	}

	return endpoints, nil
}

// SaveEndpoints writes the endpoints document, creating the directory if
// needed. Values are written as-is; substitution placeholders survive the
// round trip.
func SaveEndpoints(file File, filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if !strings.HasSuffix(filePath, ".yaml") && !strings.HasSuffix(filePath, ".yml") {
		filePath = filePath + ".yaml"
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal endpoints: %w", err)
	}

	return os.WriteFile(filePath, data, 0644)
}

// LoadVariables reads the substitution variables file. A missing file is not
// an error; it just means no project variables.
func LoadVariables(filePath string) (map[string]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read variables file: %w", err)
	}

	var vars map[string]string
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("failed to parse variables YAML: %w", err)
	}
	if vars == nil {
		vars = map[string]string{}
	}

	return vars, nil
}

// InitWorkspace creates the workspace directory with a starter endpoints
// file. An existing endpoints file is left untouched.
func InitWorkspace(baseDir string) error {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	path := EndpointsPath(baseDir)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	starter := File{
		Endpoints: []Entry{
			{
				Name: "local",
				URL:  "http://localhost:4000/graphql",
				Options: map[string]any{
					"headers": map[string]any{
						"Authorization": "Bearer {{env:GRAPHQL_TOKEN}}",
					},
				},
			},
		},
	}
	return SaveEndpoints(starter, path)
}
