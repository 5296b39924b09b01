// Translation catalog import.
//
// Catalogs are JSON or YAML objects mapping source text to translation.
// Nested objects are flattened into dotted keys ("menu.file.open"). A null
// value imports as an empty translation, marking the source as known but not
// yet translated. The whole catalog is validated before the group is
// touched.
package cktext

import (
	"fmt"
	"maps"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ImportJSON merges a JSON catalog into g and returns the number of pairs
// imported.
func (g *Group) ImportJSON(data []byte) (int, error) {
	var catalog map[string]any
	if err := json.Unmarshal(data, &catalog); err != nil {
		return 0, fmt.Errorf("import json: %w", err)
	}
	return g.importCatalog(catalog)
}

// ImportYAML merges a YAML catalog into g and returns the number of pairs
// imported.
func (g *Group) ImportYAML(data []byte) (int, error) {
	var catalog map[string]any
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return 0, fmt.Errorf("import yaml: %w", err)
	}
	return g.importCatalog(catalog)
}

func (g *Group) importCatalog(catalog map[string]any) (int, error) {
	pairs := flatten(catalog, "")
	for src, trs := range pairs {
		if err := validateItem(src, trs); err != nil {
			return 0, fmt.Errorf("import %q: %w", src, err)
		}
	}
	maps.Copy(g.items, pairs)
	return len(pairs), nil
}

// flatten turns nested catalog objects into dotted source keys.
func flatten(data map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case nil:
			out[full] = ""
		case string:
			out[full] = v
		case map[string]any:
			maps.Copy(out, flatten(v, full))
		default:
			out[full] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
