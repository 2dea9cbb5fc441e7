package semantics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// WithOpenAPIValidators overlays entry validators from an OpenAPI document.
// Each schema under components/schemas whose property names are semantic keys
// (for example a ProfileData schema with an "email" property carrying
// format/pattern constraints) replaces the built-in validator for that key.
// Schema constraints run in addition to nothing else: the overlay validator
// is total and returns false for values the schema rejects.
func WithOpenAPIValidators(data []byte) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.openapiDoc = data
	}
}

func applyOpenAPIValidators(r *Registry, data []byte) error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("semantics: load profile schema: %w", err)
	}
	if doc.Components == nil {
		return nil
	}
	for _, schemaRef := range doc.Components.Schemas {
		if schemaRef == nil || schemaRef.Value == nil {
			continue
		}
		for prop, propRef := range schemaRef.Value.Properties {
			entry, ok := r.entries[prop]
			if !ok || propRef == nil || propRef.Value == nil {
				continue
			}
			entry.Validate = schemaValidator(propRef.Value)
		}
	}
	return nil
}

// schemaValidator wraps an OpenAPI schema as a total predicate over strings.
// Values are coerced to the schema's declared type before visiting; coercion
// failure is a validation failure, never an error.
func schemaValidator(schema *openapi3.Schema) func(string) bool {
	return func(value string) bool {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return false
		}
		var candidate any = trimmed
		switch {
		case schema.Type.Is(openapi3.TypeNumber):
			f, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return false
			}
			candidate = f
		case schema.Type.Is(openapi3.TypeInteger):
			i, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				return false
			}
			candidate = i
		case schema.Type.Is(openapi3.TypeBoolean):
			b, err := strconv.ParseBool(trimmed)
			if err != nil {
				return false
			}
			candidate = b
		}
		return schema.VisitJSON(candidate) == nil
	}
}
