// Package validation checks request bodies against per-route JSON schemas
// before any store is touched.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/maanvikp20/promosite/internal/apperr"
)

// Patterns shared with the contact form on the public site.
const (
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	PhonePattern = `^[\+]?[1-9]?[\d\s\-\(\)]{7,15}$`
)

// Schema is a compiled JSON schema together with the human-readable shape
// that is echoed back when a body does not match it.
type Schema struct {
	name     string
	expected string
	schema   *gojsonschema.Schema
}

func compile(name, expected string, def map[string]any) *Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("validation: compile %s schema: %v", name, err))
	}
	return &Schema{name: name, expected: expected, schema: s}
}

func (s *Schema) Name() string { return s.name }

func (s *Schema) Expected() string { return s.expected }

// Validate returns a BadRequest error listing every violation, or nil.
func (s *Schema) Validate(body map[string]any) error {
	if body == nil {
		return apperr.BadRequest("Invalid body. Required: "+s.expected, s.expected)
	}
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(body))
	if err != nil {
		return apperr.BadRequest("Invalid body: "+err.Error(), s.expected)
	}
	if result.Valid() {
		return nil
	}

	details := make([]apperr.FieldError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		details = append(details, apperr.FieldError{
			Field:   fieldName(re),
			Message: describe(re),
		})
	}
	sort.SliceStable(details, func(i, j int) bool { return details[i].Field < details[j].Field })
	return apperr.BadRequest("Invalid body. Required: "+s.expected, s.expected, details...)
}

// fieldName points required-property errors at the missing property rather
// than at the enclosing object.
func fieldName(re gojsonschema.ResultError) string {
	if re.Type() == "required" {
		if p, ok := re.Details()["property"].(string); ok {
			return p
		}
	}
	f := re.Field()
	if f == gojsonschema.STRING_CONTEXT_ROOT {
		return "body"
	}
	return strings.TrimPrefix(f, "(root).")
}

func describe(re gojsonschema.ResultError) string {
	switch re.Type() {
	case "required":
		return "is required"
	case "string_gte":
		return "must not be empty"
	case "pattern":
		switch fieldName(re) {
		case "email":
			return "must be a valid email address"
		case "phone":
			return "must be a valid phone number"
		}
		return "must not be blank"
	}
	return re.Description()
}
