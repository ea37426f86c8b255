package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// ParseSchema decodes one schema document. $name placeholders are
// substituted from the schema's own constants before decoding, so
// every field, nested schema and validation sees expanded values.
func ParseSchema(data []byte) (*Schema, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	raw = expandVars(raw, rawConstants(raw))
	buf, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	s := &Schema{}
	if err := yaml.Unmarshal(buf, s); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return s, nil
}

func rawConstants(raw any) map[string]any {
	res := map[string]any{}
	switch t := raw.(type) {
	case map[string]any:
		if c, ok := t["constants"].(map[string]any); ok {
			return c
		}
	case map[any]any:
		if c, ok := t["constants"].(map[any]any); ok {
			for k, v := range c {
				if ks, ok := k.(string); ok {
					res[ks] = v
				}
			}
		}
	}
	return res
}

// ParseTypes decodes a shared type registry document of the form
// type_name -> {pattern, values, one_of, context, description}.
func ParseTypes(data []byte) (map[string]*TypeDef, error) {
	defs := map[string]*TypeDef{}
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("types: %w", err)
	}
	return defs, nil
}

// LoadDir builds a Registry from a rules directory. Files named
// types*.yaml (or .yml) feed the type registry; scopes*.yaml is left
// to the scope package; every other YAML file is one schema.
// Registration order is the sorted file order, keeping the
// path-pattern tie-break deterministic across runs.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("rules dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	reg := NewRegistry()
	for _, name := range names {
		if strings.HasPrefix(name, "scopes") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("rules dir: %w", err)
		}
		if strings.HasPrefix(name, "types") {
			defs, err := ParseTypes(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			reg.AddTypes(defs)
			continue
		}
		s, err := ParseSchema(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		reg.AddSchema(s)
	}
	return reg, nil
}
