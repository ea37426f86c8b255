package scope

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Load builds a Registry from YAML of the form
//
//	character:
//	  links: {liege: character, primary_title: landed_title}
//	  lists: [vassal, courtier]
//	  triggers: [is_adult, has_trait]
//	  effects: [add_gold, set_relation]
func Load(data []byte) (*Registry, error) {
	defs := map[string]*Def{}
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("scope registry: %w", err)
	}
	return NewRegistry(defs), nil
}

// LoadFile reads a scope registry from a YAML file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scope registry: %w", err)
	}
	return Load(data)
}
