package record

import (
	"encoding/json"
	"fmt"
	"io"
)

// FromJSON decodes a record produced by an external invite parser. The
// payload is a JSON object; nested objects and arrays of objects convert
// one level deep (recipient lists), anything deeper stays opaque.
func FromJSON(r io.Reader) (*Record, error) {
	var raw map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return FromMap(normalizeNumbers(raw)), nil
}

// normalizeNumbers rewrites json.Number values into plain strings so that
// templates interpolate them verbatim instead of via float formatting.
func normalizeNumbers(m map[string]any) map[string]any {
	for k, v := range m {
		switch val := v.(type) {
		case json.Number:
			m[k] = val.String()
		case map[string]any:
			m[k] = normalizeNumbers(val)
		case []any:
			for i, item := range val {
				if nested, ok := item.(map[string]any); ok {
					val[i] = normalizeNumbers(nested)
				} else if n, ok := item.(json.Number); ok {
					val[i] = n.String()
				}
			}
		}
	}
	return m
}
