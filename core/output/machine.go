package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONFormatter renders indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format implements Formatter
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// RenderQuote implements Formatter
func (f *JSONFormatter) RenderQuote(w io.Writer, r *QuoteReport) error {
	return writeJSON(w, r)
}

// RenderOptions implements Formatter
func (f *JSONFormatter) RenderOptions(w io.Writer, r *OptionsReport) error {
	return writeJSON(w, r)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLFormatter renders YAML
type YAMLFormatter struct{}

// NewYAMLFormatter creates a YAML formatter
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format implements Formatter
func (f *YAMLFormatter) Format() Format {
	return FormatYAML
}

// RenderQuote implements Formatter
func (f *YAMLFormatter) RenderQuote(w io.Writer, r *QuoteReport) error {
	return writeYAML(w, r)
}

// RenderOptions implements Formatter
func (f *YAMLFormatter) RenderOptions(w io.Writer, r *OptionsReport) error {
	return writeYAML(w, r)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
