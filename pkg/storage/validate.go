package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// endpointsSchema validates the shape of the endpoints document before it is
// decoded, so a malformed file produces field-level messages instead of a
// half-populated registry.
const endpointsSchema = `{
	"type": "object",
	"required": ["endpoints"],
	"properties": {
		"endpoints": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["url"],
				"properties": {
					"name": {"type": "string"},
					"url": {"type": "string", "minLength": 1},
					"options": {"type": "object"}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`

// ValidateEndpoints checks raw endpoints YAML against the document schema.
func ValidateEndpoints(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse endpoints YAML: %w", err)
	}

	// gojsonschema speaks JSON; YAML mappings decode to JSON-compatible
	// values, so a re-encode bridges the two.
	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to convert endpoints document: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(endpointsSchema),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if err != nil {
		return fmt.Errorf("failed to validate endpoints document: %w", err)
	}

	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("invalid endpoints file: %s", strings.Join(msgs, "; "))
	}

	return nil
}
