package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Response is the result envelope used by mutating commands in json/yaml mode.
type Response struct {
	Success   bool        `json:"success"             yaml:"success"`
	Timestamp time.Time   `json:"timestamp"           yaml:"timestamp"`
	Command   string      `json:"command"             yaml:"command"`
	Data      interface{} `json:"data,omitempty"      yaml:"data,omitempty"`
	Error     *string     `json:"error,omitempty"     yaml:"error,omitempty"`
}

// OutputType selects how a command renders its result.
type OutputType string

const (
	OutputTable OutputType = "table"
	OutputYAML  OutputType = "yaml"
	OutputJSON  OutputType = "json"
)

// SerializeType is the structured sub-mode used by the serde renderer.
type SerializeType string

const (
	SerializeJSON SerializeType = "json"
	SerializeYAML SerializeType = "yaml"
)

// DefaultOutputType returns the table mode.
func DefaultOutputType() OutputType {
	return OutputTable
}

// ParseOutputType converts user input into an OutputType. Empty input is table.
func ParseOutputType(s string) (OutputType, error) {
	switch OutputType(strings.ToLower(strings.TrimSpace(s))) {
	case OutputTable, "":
		return OutputTable, nil
	case OutputYAML:
		return OutputYAML, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("invalid output type %q: must be table, yaml, or json", s)
	}
}

// IsTable reports whether t is the table mode. The zero value counts as table.
func (t OutputType) IsTable() bool {
	return t == OutputTable || t == ""
}

// SerializeType maps yaml and json onto their serde sub-mode.
func (t OutputType) SerializeType() (SerializeType, bool) {
	switch t {
	case OutputJSON:
		return SerializeJSON, true
	case OutputYAML:
		return SerializeYAML, true
	default:
		return "", false
	}
}

var _ pflag.Value = (*OutputType)(nil)

// String implements pflag.Value.
func (t OutputType) String() string {
	if t == "" {
		return string(OutputTable)
	}
	return string(t)
}

// Set implements pflag.Value.
func (t *OutputType) Set(s string) error {
	parsed, err := ParseOutputType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Type implements pflag.Value.
func (t *OutputType) Type() string {
	return "table|yaml|json"
}
