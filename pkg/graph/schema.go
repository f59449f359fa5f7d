package graph

import (
	"errors"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// DocumentSchema is the JSON Schema a persisted Document must satisfy
// (spec 6). UnmarshalDocument checks incoming bytes against it before
// attempting to build a Go value, so a hand-edited or foreign-tool
// document fails with one ErrMalformedDocument instead of a confusing
// zero-value field propagating into Deserialize.
const DocumentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["nodes"],
	"properties": {
		"nodes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["type", "uuid", "inputPorts", "outputPorts"],
				"properties": {
					"type": {"type": "string", "minLength": 1},
					"uuid": {"type": "string", "minLength": 1},
					"inputPorts": {
						"type": "object",
						"additionalProperties": {"$ref": "#/definitions/portRecord"}
					},
					"outputPorts": {
						"type": "object",
						"additionalProperties": {"$ref": "#/definitions/portRecord"}
					},
					"data": {"type": ["object", "null"]}
				}
			}
		}
	},
	"definitions": {
		"portRecord": {
			"type": "object",
			"required": ["uuid"],
			"properties": {
				"uuid": {"type": "string", "minLength": 1},
				"source": {"type": ["string", "null"]}
			}
		}
	}
}`

// ValidateDocument runs a structural pre-check of doc against schema
// before the two-pass reconstruction in Deserialize runs, so a
// caller can reject a garbage document with a single, specific
// error instead of a confusing failure partway through
// reconstruction.
func ValidateDocument(doc []byte, schema []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schema)
	docLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return malformedDocument(err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return malformedDocument(errors.New(strings.Join(msgs, "; ")))
}
