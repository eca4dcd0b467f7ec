package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// WithOverrides returns a copy of c with the options in o replaced. o maps
// option names to values as decoded from either file format; unknown
// names are rejected.
func (c RegionConfig) WithOverrides(o map[string]any) (RegionConfig, error) {
	if len(o) == 0 {
		return c, nil
	}
	data, err := yaml.Marshal(o)
	if err != nil {
		return RegionConfig{}, fmt.Errorf("config: overrides: %w", err)
	}
	if err := Decode(bytes.NewReader(data), FormatYAML, &c); err != nil {
		return RegionConfig{}, fmt.Errorf("config: overrides: %w", err)
	}
	return c, nil
}
