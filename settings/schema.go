package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FieldType selects how the host renders a field.
type FieldType string

const (
	TypeText      FieldType = "text"
	TypeNumber    FieldType = "number"
	TypeParagraph FieldType = "paragraph"
)

// Field is a single setting. Only the attributes that apply to its Type are
// set; the rest stay nil so they are omitted when serialized.
type Field struct {
	Key         string    `json:"key" yaml:"key"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Type        FieldType `json:"type" yaml:"type"`
	ReadOnly    bool      `json:"readonly" yaml:"readonly"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Default     any       `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	MinLength   *int      `json:"min_length,omitempty" yaml:"min_length,omitempty"`
	MaxLength   *int      `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	Min         *float64  `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	Max         *float64  `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	Step        *float64  `json:"step,omitempty" yaml:"step,omitempty"`
	Hidden      bool      `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Content     string    `json:"content,omitempty" yaml:"content,omitempty"`
}

// Grid is a titled group of fields.
type Grid struct {
	Key    string  `json:"key" yaml:"key"`
	Label  string  `json:"label" yaml:"label"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Page is a plugin-level settings page.
type Page struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Icon  string `json:"icon" yaml:"icon"`
	Grids []Grid `json:"grids" yaml:"grids"`
}

// Text builds a text field.
func Text(key, label, placeholder, def string) Field {
	return Field{Key: key, Label: label, Type: TypeText, Placeholder: placeholder, Default: def}
}

// Secret builds a hidden text field for credentials.
func Secret(key, label, placeholder string) Field {
	f := Text(key, label, placeholder, "")
	f.Hidden = true
	return f
}

// Number builds a numeric slider bounded by min and max.
func Number(key, label string, def, minValue, maxValue, step float64) Field {
	return Field{
		Key:         key,
		Label:       label,
		Type:        TypeNumber,
		Placeholder: formatNumber(def),
		Default:     def,
		Min:         &minValue,
		Max:         &maxValue,
		Step:        &step,
	}
}

// formatNumber keeps one decimal on whole numbers, so 0 reads "0.0".
func formatNumber(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Paragraph builds a read-only block of informational text. Content may
// contain simple HTML.
func Paragraph(key, content string) Field {
	return Field{Key: key, Type: TypeParagraph, Content: content}
}

// Field returns the field with the given key.
func (g Grid) Field(key string) (Field, bool) {
	for _, f := range g.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults collects the default value of every field that has one.
func Defaults(grids ...Grid) Values {
	v := Values{}
	for _, g := range grids {
		for _, f := range g.Fields {
			if f.Default != nil {
				v[f.Key] = f.Default
			}
		}
	}
	return v
}

// MarshalYAML renders any schema value as YAML.
func MarshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("settings: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("settings: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON renders any schema value as indented JSON.
func MarshalJSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("settings: encode json: %w", err)
	}
	return b, nil
}
