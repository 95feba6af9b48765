package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	TypeObject = "OBJECT"
	TypeString = "STRING"
)

// Schema is the subset of OpenAPI schema accepted by the structured-output endpoints.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Describe renders the schema as a field list for providers without native schema support.
func (s *Schema) Describe() string {
	if s == nil || len(s.Properties) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("{")
	for i, name := range s.Required {
		prop := s.Properties[name]
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(fmt.Sprintf("%q: ", name))
		if prop != nil && len(prop.Enum) > 0 {
			b.WriteString(strings.Join(quoteAll(prop.Enum), " | "))
		} else {
			b.WriteString(`"string"`)
		}
	}
	b.WriteString("}")
	return b.String()
}

// Validate checks required fields, string typing and enum membership of an object document.
func (s *Schema) Validate(raw []byte) error {
	if s == nil {
		return nil
	}
	if !strings.EqualFold(s.Type, TypeObject) {
		return fmt.Errorf("unsupported root schema type %q", s.Type)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}

	for _, name := range s.Required {
		if v, ok := doc[name]; !ok || v == nil {
			return fmt.Errorf("missing required field %q", name)
		}
	}

	for name, prop := range s.Properties {
		v, ok := doc[name]
		if !ok || v == nil || prop == nil {
			continue
		}
		if strings.EqualFold(prop.Type, TypeString) {
			str, isString := v.(string)
			if !isString {
				return fmt.Errorf("field %q must be a string", name)
			}
			if len(prop.Enum) > 0 && !contains(prop.Enum, str) {
				return fmt.Errorf("field %q has value %q outside %v", name, str, prop.Enum)
			}
		}
	}
	return nil
}

// CleanJSON strips markdown code fences models like to wrap JSON in.
func CleanJSON(text string) []byte {
	b := bytes.TrimSpace([]byte(text))
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	return bytes.TrimSpace(b)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%q", v)
	}
	return out
}
