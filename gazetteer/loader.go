package gazetteer

import (
	"encoding/json"
	"fmt"
	"os"
)

// fileTables is the on-disk shape of an operator-provided gazetteer.
type fileTables struct {
	Places []Place `json:"places"`
	Zones  []Zone  `json:"zones"`
}

// LoadFile builds a Gazetteer from a JSON file with the shape
// {"places":[...],"zones":[...]}. Place order in the file becomes the
// resolution precedence, exactly as with the compiled-in tables.
func LoadFile(path string) (*Gazetteer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read gazetteer file: %w", err)
	}

	var tables fileTables
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("cannot parse gazetteer file: %w", err)
	}

	if len(tables.Places) == 0 {
		return nil, fmt.Errorf("gazetteer file %s declares no places", path)
	}
	seen := make(map[string]bool, len(tables.Places))
	for _, p := range tables.Places {
		if p.Key == "" {
			return nil, fmt.Errorf("gazetteer place %q has an empty key", p.Name)
		}
		if seen[p.Key] {
			return nil, fmt.Errorf("duplicate gazetteer place key %q", p.Key)
		}
		seen[p.Key] = true
	}
	for _, z := range tables.Zones {
		for _, key := range z.Places {
			if !seen[key] {
				return nil, fmt.Errorf("zone %q references unknown place %q", z.Key, key)
			}
		}
	}

	return New(tables.Places, tables.Zones), nil
}
