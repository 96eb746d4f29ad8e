// Package schema is the Schema collaborator (C10): it parses a small,
// line-oriented schema definition language into a type model and checks
// arbitrary decoded JSON values against it, delegating the actual
// structural checking to github.com/google/jsonschema-go so this package
// only has to translate between the definition language and a
// jsonschema.Schema, not reimplement validation.
package schema

import (
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// Field is one named, typed member of a type definition.
type Field struct {
	Name     string
	Type     string // "string", "number", "boolean", "array", "object"
	Required bool
}

// TypeDef is one named record type parsed from schema source.
type TypeDef struct {
	Name   string
	Fields []Field
}

// Model is a parsed schema document: every type definition it names,
// keyed by name.
type Model struct {
	Types map[string]*TypeDef
}

// Parse reads the schema definition language:
//
//	typeName: field type, field2 type2!, field3 type3
//
// one type definition per line; a field whose type is suffixed with '!' is
// required.
// Recognised types are string, number, boolean, array, object.
func Parse(text string) (*Model, error) {
	m := &Model{Types: map[string]*TypeDef{}}
	for lineNo, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		colon := strings.Index(line, ":")
		if colon < 0 {
			return nil, fmt.Errorf("schema line %d: expected \"typeName: fields\"", lineNo+1)
		}
		name := strings.TrimSpace(line[:colon])
		if name == "" {
			return nil, fmt.Errorf("schema line %d: empty type name", lineNo+1)
		}
		def := &TypeDef{Name: name}
		for _, rawField := range strings.Split(line[colon+1:], ",") {
			fieldText := strings.TrimSpace(rawField)
			if fieldText == "" {
				continue
			}
			parts := strings.Fields(fieldText)
			if len(parts) != 2 {
				return nil, fmt.Errorf("schema line %d: malformed field %q", lineNo+1, fieldText)
			}
			required := strings.HasSuffix(parts[1], "!")
			typ := strings.TrimSuffix(parts[1], "!")
			def.Fields = append(def.Fields, Field{Name: parts[0], Type: typ, Required: required})
		}
		m.Types[name] = def
	}
	return m, nil
}

// toJSONSchema builds a jsonschema.Schema object-type definition for a
// single TypeDef.
func (def *TypeDef) toJSONSchema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(def.Fields))
	var required []string
	for _, f := range def.Fields {
		props[f.Name] = &jsonschema.Schema{Type: f.Type}
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// Validate checks value (a decoded JSON value: map[string]any, []any,
// string, float64, bool, or nil) against the named type, returning a
// human-readable message on failure or "" if it conforms.
func (m *Model) Validate(typeName string, value any) (string, error) {
	def, ok := m.Types[typeName]
	if !ok {
		return "", fmt.Errorf("unknown schema type %q", typeName)
	}
	resolved, err := def.toJSONSchema().Resolve(nil)
	if err != nil {
		return "", err
	}
	if err := resolved.Validate(value); err != nil {
		return err.Error(), nil
	}
	return "", nil
}

// Describe returns the definition language's own type model -- the fixed
// shape every type model parsed by Parse conforms to -- as plain Go values
// a caller can hand to an Object-value builder.
func Describe() map[string]any {
	return map[string]any{
		"fieldTypes": []any{"string", "number", "boolean", "array", "object"},
		"syntax":     "typeName: field type, field2 type2!",
		"required":   "a trailing ! on the type marks the field required",
	}
}
