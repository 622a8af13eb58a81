// Package validation checks request bodies against embedded JSON schemas
// before they are decoded into DTOs or handed to the update builder.
package validation

import (
	"embed"
	"fmt"
	"io/fs"
	"math"
	"path"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

// Schema ids, matching the $id of each embedded document.
const (
	CompanyCreate = "company_create"
	CompanyPatch  = "company_patch"
	JobCreate     = "job_create"
	JobPatch      = "job_patch"
	UserRegister  = "user_register"
	UserPatch     = "user_patch"
	Login         = "login"
)

const maxExactInt = 1 << 53

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator holds the compiled schemas. It is safe for concurrent use.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// New compiles every embedded schema.
func New() (*Validator, error) {
	entries, err := fs.ReadDir(schemaFS, "schemas")
	if err != nil {
		return nil, err
	}
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(entries))}
	for _, entry := range entries {
		raw, err := schemaFS.ReadFile(path.Join("schemas", entry.Name()))
		if err != nil {
			return nil, err
		}
		var header struct {
			ID string `json:"$id"`
		}
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", entry.Name(), err)
		}
		if header.ID == "" {
			return nil, fmt.Errorf("schema %s does not contain $id", entry.Name())
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", header.ID, err)
		}
		v.schemas[header.ID] = schema
	}
	return v, nil
}

// MustNew is New for process start-up.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Decode validates body against schemaID and unmarshals it into dst.
func (v *Validator) Decode(schemaID string, body []byte, dst any) error {
	if err := v.check(schemaID, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewValidationError("invalid JSON body", nil)
	}
	return nil
}

// Patch decodes a partial update body. The body must be a flat JSON object
// whose values are scalars or null; known fields are type-checked against
// schemaID. Which fields may be updated at all is decided later by the
// update builder's allow-list.
func (v *Validator) Patch(schemaID string, body []byte) (map[string]any, error) {
	fields, err := decodeFlatObject(body)
	if err != nil {
		return nil, err
	}
	if err := v.check(schemaID, body); err != nil {
		return nil, err
	}
	return fields, nil
}

func (v *Validator) check(schemaID string, body []byte) error {
	schema, ok := v.schemas[schemaID]
	if !ok {
		return fmt.Errorf("there is no schema %s", schemaID)
	}
	if !json.Valid(body) {
		return apperrors.NewValidationError("invalid JSON body", nil)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewValidationError("invalid JSON body", nil)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return apperrors.NewValidationError("request body failed validation", map[string]any{"errors": problems})
}

func decodeFlatObject(body []byte) (map[string]any, error) {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, apperrors.NewValidationError("invalid JSON body", nil)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, apperrors.NewValidationError("update body must be a JSON object", nil)
	}
	for key, value := range obj {
		switch val := value.(type) {
		case nil, string, bool:
		case float64:
			// integral numbers bind as integers so integer columns accept them
			if val == math.Trunc(val) && math.Abs(val) < maxExactInt {
				obj[key] = int64(val)
			}
		default:
			return nil, apperrors.NewValidationError("update values must be scalars",
				map[string]any{"field": key})
		}
	}
	return obj, nil
}
