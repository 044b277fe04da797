package main

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// print writes v to stdout in the selected format
func (a *app) print(v any) error {
	switch a.format {
	case "json":
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
	default:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
	}
	return nil
}
