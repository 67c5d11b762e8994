package apidoc

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultExamplesFile is where recorded examples are read from unless
// WithExamplesFile overrides it.
const DefaultExamplesFile = "doc/apidoc_examples.yml"

// RecordedExample is one request/response pair captured by the recorder.
// The file maps "resource#method" keys to lists of these.
type RecordedExample struct {
	Verb         string `yaml:"verb"`
	Path         string `yaml:"path"`
	Query        string `yaml:"query"`
	Code         int    `yaml:"code"`
	ShowInDoc    int    `yaml:"show_in_doc"`
	RequestData  any    `yaml:"request_data"`
	ResponseData any    `yaml:"response_data"`
}

// Format renders the example as documentation text.
func (e RecordedExample) Format() string {
	var b strings.Builder
	b.WriteString(e.Verb)
	b.WriteString(" ")
	b.WriteString(e.Path)
	if e.Query != "" {
		b.WriteString("?")
		b.WriteString(e.Query)
	}
	if e.RequestData != nil {
		b.WriteString("\n")
		b.WriteString(formatExampleData(e.RequestData))
	}
	fmt.Fprintf(&b, "\n%d", e.Code)
	if e.ResponseData != nil {
		b.WriteString("\n")
		b.WriteString(formatExampleData(e.ResponseData))
	}
	return b.String()
}

// formatExampleData pretty-prints structured data as JSON and leaves
// strings untouched.
func formatExampleData(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(normalizeYAML(v), "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

// normalizeYAML converts map[any]any values left by YAML decoding into
// JSON-encodable map[string]any.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}

// RecordedExamples returns the recorded examples, reading the examples file
// on first use. A missing file yields an empty set.
func (r *Registry) RecordedExamples() (map[string][]RecordedExample, error) {
	if r.recordedExamples != nil {
		return r.recordedExamples, nil
	}

	data, err := os.ReadFile(r.examplesFile)
	if errors.Is(err, fs.ErrNotExist) {
		r.recordedExamples = map[string][]RecordedExample{}
		return r.recordedExamples, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read examples %s: %w", r.examplesFile, err)
	}

	examples := map[string][]RecordedExample{}
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("parse examples %s: %w", r.examplesFile, err)
	}
	r.logger.Debug("loaded recorded examples", "file", r.examplesFile, "keys", len(examples))

	r.recordedExamples = examples
	return examples, nil
}

// ReloadExamples discards the cached examples so the next read goes to disk.
func (r *Registry) ReloadExamples() {
	r.recordedExamples = nil
}

// examplesFor returns the formatted examples shown in the documentation for
// key, ordered by their show_in_doc rank.
func (r *Registry) examplesFor(key string) []string {
	all, err := r.RecordedExamples()
	if err != nil {
		r.logger.Warn("recorded examples unavailable", "file", r.examplesFile, "error", err)
		return nil
	}

	var shown []RecordedExample
	for _, ex := range all[key] {
		if ex.ShowInDoc > 0 {
			shown = append(shown, ex)
		}
	}
	slices.SortStableFunc(shown, func(a, b RecordedExample) int {
		return cmp.Compare(a.ShowInDoc, b.ShowInDoc)
	})

	out := make([]string, 0, len(shown))
	for _, ex := range shown {
		out = append(out, ex.Format())
	}
	return out
}
