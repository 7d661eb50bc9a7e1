package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formatter renders command results.
type Formatter interface {
	Format(data any) (string, error)
}

// NewFormatter returns the formatter for format: "text" (default), "json"
// or "yaml".
func NewFormatter(format string) Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return &JSONFormatter{}
	case "yaml":
		return &YAMLFormatter{}
	default:
		return &TextFormatter{}
	}
}

// TextFormatter prints options in their log form and tables with tabwriter.
type TextFormatter struct{}

func (f *TextFormatter) Format(data any) (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	switch v := data.(type) {
	case []OptionView:
		if len(v) == 0 {
			return "No options.\n", nil
		}
		for _, opt := range v {
			fmt.Fprintln(w, opt.Text)
		}
	case OptionView:
		fmt.Fprintln(w, v.Text)
	case []CodeView:
		fmt.Fprintln(w, "ID\tNAME\tLABEL")
		for _, c := range v {
			fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Label)
		}
	case EncodeResult:
		fmt.Fprintf(w, "%s\t%s\n", v.Option.Text, v.Hex)
	default:
		fmt.Fprintln(w, data)
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormatter formats data as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(data any) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format json: %w", err)
	}
	return string(b) + "\n", nil
}

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(data any) (string, error) {
	b, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("format yaml: %w", err)
	}
	return string(b), nil
}
