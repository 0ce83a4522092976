package output

import (
	schederrors "github.com/abatilo/smartsched/internal/errors"
	"github.com/abatilo/smartsched/internal/storage"
)

// Output format names accepted by New.
const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTaskList(title string, entries []storage.Entry) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// New returns the formatter for the named format. Color only affects human output.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case FormatHuman, "":
		return NewHumanFormatter(color), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	case FormatYAML:
		return NewYAMLFormatter(), nil
	default:
		return nil, schederrors.InvalidOutputError{Value: format}
	}
}
