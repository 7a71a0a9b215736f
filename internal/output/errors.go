package output

import "fmt"

// OutputError is returned when a value cannot be serialized. Kind tells which
// encoder failed; Err is the encoder's error, unchanged.
type OutputError struct {
	Kind SerializeType
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%s serialization: %v", e.Kind, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// IsJSON reports whether the JSON encoder failed.
func (e *OutputError) IsJSON() bool {
	return e.Kind == SerializeJSON
}

// IsYAML reports whether the YAML encoder failed.
func (e *OutputError) IsYAML() bool {
	return e.Kind == SerializeYAML
}
