package source

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jsamuelsen11/jeeves-dashboard/internal/domain"
)

const schemaURL = "projects.schema.json"

//go:embed schema/projects.schema.json
var schemaJSON string

// documentSchema is compiled once; the embedded schema is a build-time
// constant, so a compile failure is a programming error.
var documentSchema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// validateDocument checks raw JSON against the projects schema. Syntax errors
// and schema violations are both reported as *domain.ValidationError keyed by
// JSON-pointer location ("projects/0/id"); the root is keyed "document".
func validateDocument(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return domain.NewValidationError(rootField, "invalid JSON: "+err.Error())
	}
	if dec.More() {
		return domain.NewValidationError(rootField, "invalid JSON: trailing data after document")
	}

	if err := documentSchema.Validate(doc); err != nil {
		return schemaErrorToValidation(err)
	}
	return nil
}

const rootField = "document"

// schemaErrorToValidation flattens the jsonschema error tree into one message
// per instance location, keeping the first leaf message seen for each.
func schemaErrorToValidation(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating document: %w", err)
	}

	fields := make(map[string]string)
	collectSchemaErrors(ve, fields)
	if len(fields) == 0 {
		fields[rootField] = ve.Message
	}
	return &domain.ValidationError{Fields: fields}
}

func collectSchemaErrors(ve *jsonschema.ValidationError, fields map[string]string) {
	if len(ve.Causes) == 0 {
		key := pointerToField(ve.InstanceLocation)
		if _, ok := fields[key]; !ok {
			fields[key] = ve.Message
		}
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, fields)
	}
}

// pointerToField turns "/projects/0/id" into "projects/0/id".
func pointerToField(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return rootField
	}
	ptr = strings.ReplaceAll(ptr, "~1", "/")
	return strings.ReplaceAll(ptr, "~0", "~")
}
