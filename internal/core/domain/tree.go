package domain

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

// Normalize converts v into the JSON-shaped form the cache tree stores:
// map[string]any, []any, string, float64, bool or nil.
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeTree decodes a JSON-shaped tree into target using mapstructure tags.
func DecodeTree(input, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// Section returns the mapping stored under key, or nil when absent or not a mapping.
func Section(tree map[string]any, key string) map[string]any {
	if tree == nil {
		return nil
	}
	sub, _ := tree[key].(map[string]any)
	return sub
}
