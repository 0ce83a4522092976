package output

import (
	"bytes"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/abatilo/smartsched/internal/storage"
)

// YAMLFormatter formats output as YAML documents.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAMLFormatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// marshalYAML encodes v as a YAML document terminated by "---" so consecutive
// outputs in one session stay separable. A value that fails to encode is
// replaced by an error document.
func marshalYAML(v any) string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err := enc.Encode(v)
	if err == nil {
		err = enc.Close()
	}
	if err != nil {
		// A single string field always encodes.
		return marshalYAML(errorDoc{Error: zerr.Wrap(err, "encode yaml output").Error()})
	}
	buf.WriteString("---\n")
	return buf.String()
}

// FormatTaskList formats a list of tasks as YAML.
func (f *YAMLFormatter) FormatTaskList(title string, entries []storage.Entry) string {
	return marshalYAML(toTaskListDoc(title, entries))
}

// FormatError formats an error as YAML.
func (f *YAMLFormatter) FormatError(err error) string {
	return marshalYAML(errorDoc{Error: err.Error()})
}

// FormatMessage formats a simple message as YAML.
func (f *YAMLFormatter) FormatMessage(msg string) string {
	return marshalYAML(messageDoc{Message: msg})
}
