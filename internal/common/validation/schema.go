// Package validation checks inbound request bodies against JSON schemas
// before any downstream work happens.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// resolveRequestSchema is the contract for POST /api/order-intent.
var resolveRequestSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"message": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"customerId": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"chatHistory": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"role": map[string]interface{}{
						"type": "string",
						"enum": []interface{}{"user", "assistant"},
					},
					"content": map[string]interface{}{
						"type": "string",
					},
				},
				"required": []interface{}{"role", "content"},
			},
		},
	},
	"required": []interface{}{"message", "customerId"},
}

// ValidateResolveRequest validates a decoded request body. It returns a
// human-readable description of every violation, or nil when valid.
func ValidateResolveRequest(body map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(resolveRequestSchema)
	documentLoader := gojsonschema.NewGoLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("invalid request: %s", strings.Join(problems, "; "))
}
