package form

import (
	"strings"
)

type FieldType string

const (
	TypeString     FieldType = "string"
	TypeBoolean    FieldType = "boolean"
	TypeNumber     FieldType = "number"
	TypeEnum       FieldType = "enum"
	TypeURL        FieldType = "url"
	TypeStringList FieldType = "string_list"
)

type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Description string    `json:"description,omitempty"`
	Required    bool      `json:"required"`
	Enum        []string  `json:"enum,omitempty"`
}

// DisplayLabel is the human-readable name used in missing-field
// reports: the description up to its first period when present,
// otherwise the field name with underscores spaced out and
// title-cased.
func (f Field) DisplayLabel() string {
	if f.Description != "" {
		if idx := strings.Index(f.Description, "."); idx >= 0 {
			return f.Description[:idx]
		}
		return f.Description
	}
	return titleCase(strings.ReplaceAll(f.Name, "_", " "))
}

// Schema declares the target record: an ordered field table plus the
// prose block of cross-field rules included in model prompts. Field
// names are unique and stable for the process lifetime.
type Schema struct {
	Title  string
	Fields []Field
	Rules  []string
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (s Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
