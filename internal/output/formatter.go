package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Success constructs a successful Response with the given command name and data payload.
func Success(command string, data interface{}) Response {
	return Response{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Command:   command,
		Data:      data,
	}
}

// Failure constructs a failed Response capturing the error message.
func Failure(command string, err error) Response {
	msg := err.Error()
	return Response{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Command:   command,
		Error:     &msg,
	}
}

// SerdeRenderer writes values as JSON or YAML documents.
type SerdeRenderer struct {
	out Terminal
}

// NewSerdeRenderer returns a SerdeRenderer writing to out.
func NewSerdeRenderer(out Terminal) *SerdeRenderer {
	return &SerdeRenderer{out: out}
}

// Render serializes val in the requested format. Encoder failures come back
// as *OutputError.
func (r *SerdeRenderer) Render(val any, mode SerializeType) error {
	text, err := serialize(val, mode)
	if err != nil {
		return err
	}
	if strings.HasSuffix(text, "\n") {
		r.out.Print(text)
	} else {
		r.out.Println(text)
	}
	return nil
}

func serialize(val any, mode SerializeType) (string, error) {
	switch mode {
	case SerializeJSON:
		b, err := json.MarshalIndent(val, "", "  ")
		if err != nil {
			return "", &OutputError{Kind: SerializeJSON, Err: err}
		}
		return string(b), nil
	case SerializeYAML:
		b, err := yaml.Marshal(val)
		if err != nil {
			return "", &OutputError{Kind: SerializeYAML, Err: err}
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported serialize type: %q", mode)
	}
}
