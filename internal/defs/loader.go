// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadUnitDefinitions reads a unit catalog file and replaces the built-in
// UnitLibrary. The file holds a JSON array of UnitDefinition.
func LoadUnitDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read unit definitions file: %w", err)
	}

	var unitDefs []UnitDefinition
	if err := json.Unmarshal(file, &unitDefs); err != nil {
		return fmt.Errorf("failed to unmarshal unit definitions: %w", err)
	}

	lib := make(map[string]UnitDefinition, len(unitDefs))
	order := make([]string, 0, len(unitDefs))
	for _, def := range unitDefs {
		if def.ID == "" {
			return fmt.Errorf("unit definition with empty id")
		}
		if _, dup := lib[def.ID]; dup {
			return fmt.Errorf("duplicate unit definition %q", def.ID)
		}
		lib[def.ID] = def
		order = append(order, def.ID)
	}

	UnitLibrary = lib
	unitOrder = order
	return nil
}
