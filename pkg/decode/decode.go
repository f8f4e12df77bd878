// Package decode converts loosely-typed tool arguments into typed request
// structs by round-tripping through JSON, honoring json struct tags.
package decode

import (
	"encoding/json"
	"io"
)

// FromMap decodes a map of raw argument values into T.
func FromMap[T any](data map[string]any) (T, error) {
	var result T
	b, err := json.Marshal(data)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(b, &result)
	return result, err
}

// MapFromReader reads a JSON object from r into a raw argument map.
// An empty body decodes to an empty map rather than an error, so tools
// with no required arguments can be invoked without a payload.
func MapFromReader(r io.Reader) (map[string]any, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(b, &args); err != nil {
		return nil, err
	}
	return args, nil
}
