package datafiles

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
)

// Element is one row of the packaged reference element table.
type Element struct {
	Number int     `toml:"number"` // Atomic number
	Mass   float64 `toml:"mass"`   // Unified atomic mass units
	Radius float64 `toml:"radius"` // Covalent radius, angstrom
}

type elementTable struct {
	Elements map[string]Element `toml:"elements"`
}

var (
	elementsOnce sync.Once
	elementsMap  map[string]Element
	elementsErr  error
)

// Elements returns the packaged element table, keyed by symbol.
// The table is parsed once and cached for the life of the process.
func Elements() (map[string]Element, error) {
	elementsOnce.Do(func() {
		raw, err := ReadFile("elements.toml")
		if err != nil {
			elementsErr = err
			return
		}
		var table elementTable
		if err := toml.Unmarshal(raw, &table); err != nil {
			elementsErr = fmt.Errorf("failed to parse element table: %w", err)
			return
		}
		elementsMap = table.Elements
	})
	return elementsMap, elementsErr
}
