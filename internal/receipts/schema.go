package receipts

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/origen-app/origen-server/constants"
	"github.com/origen-app/origen-server/internal/common"
)

// Request schemas (draft 2020-12 subset) built as generic maps and compiled
// once at startup. The same documents could be served to clients as an API
// contract.

func buildItemSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"description", "quantity", "unitPrice", "total"},
		"properties": map[string]any{
			"description": map[string]any{"type": "string", "minLength": 1},
			"quantity":    map[string]any{"type": "integer", "exclusiveMinimum": 0},
			"unitPrice":   map[string]any{"type": "number", "exclusiveMinimum": 0},
			"total":       map[string]any{"type": "number", "exclusiveMinimum": 0},
		},
	}
}

// BuildCreateReceiptSchema constrains the manual-create payload. There is no
// top-level total: the server computes it.
func BuildCreateReceiptSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"merchant", "purchaseDate", "currency", "items"},
		"properties": map[string]any{
			"merchant":     map[string]any{"type": "string", "minLength": 1},
			"purchaseDate": map[string]any{"type": "string", "minLength": 1},
			"currency":     map[string]any{"enum": constants.Currencies()},
			"tax":          map[string]any{"type": "number", "minimum": 0},
			"notes":        map[string]any{"type": "string"},
			"items": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    buildItemSchema(),
			},
		},
	}
}

// BuildUpdateReceiptSchema is the partial form of the create schema: every
// field optional, but a supplied items array still needs at least one entry.
// A top-level total is accepted and applied only when items are not supplied.
func BuildUpdateReceiptSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"merchant":     map[string]any{"type": "string", "minLength": 1},
			"purchaseDate": map[string]any{"type": "string", "minLength": 1},
			"currency":     map[string]any{"enum": constants.Currencies()},
			"total":        map[string]any{"type": "number", "minimum": 0},
			"tax":          map[string]any{"type": "number", "minimum": 0},
			"notes":        map[string]any{"type": "string"},
			"items": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    buildItemSchema(),
			},
		},
	}
}

var (
	createSchema = mustCompile("create-receipt.json", BuildCreateReceiptSchema())
	updateSchema = mustCompile("update-receipt.json", BuildUpdateReceiptSchema())
)

func mustCompile(name string, doc map[string]any) *jsonschema.Schema {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(name, bytes.NewReader(data)); err != nil {
		panic(err)
	}
	return c.MustCompile(name)
}

// validatePayload checks raw JSON against a compiled schema, translating
// schema violations into field-level validation errors.
func validatePayload(schema *jsonschema.Schema, payload []byte) error {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return &common.ValidationFailure{Fields: []common.FieldError{
			{Field: "body", Message: "request body must be valid JSON"},
		}}
	}
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return common.WrapError(err, "schema validation")
	}
	var fields []common.FieldError
	for _, leaf := range leafCauses(ve) {
		fields = append(fields, common.FieldError{
			Field:   fieldPath(leaf.InstanceLocation),
			Message: leaf.Message,
		})
	}
	return &common.ValidationFailure{Fields: fields}
}

func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		leaves = append(leaves, leafCauses(c)...)
	}
	return leaves
}

// fieldPath turns a JSON pointer like "/items/0/quantity" into the dotted
// field name clients display ("items.0.quantity").
func fieldPath(instanceLocation string) string {
	p := strings.TrimPrefix(instanceLocation, "/")
	if p == "" {
		return "body"
	}
	return strings.ReplaceAll(p, "/", ".")
}
