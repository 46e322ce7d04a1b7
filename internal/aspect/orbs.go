package aspect

import (
	"fmt"
	"math"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Table lists the aspects to look for and the orbs allowed for each.
type Table struct {
	Aspects []float64       `toml:"aspects"`
	Default Orbs            `toml:"default"`
	Orbs    map[string]Orbs `toml:"orbs"` // keyed by lowercase aspect name
}

// DefaultTable returns the major aspects with the usual orbs: wider for
// conjunction and opposition, narrow for the minor aspects.
func DefaultTable() *Table {
	return &Table{
		Aspects: append([]float64(nil), Major...),
		Default: Orbs{Applying: 6, Separating: 4, Stable: 5},
		Orbs: map[string]Orbs{
			"conjunction":  {Applying: 10, Separating: 8, Stable: 9},
			"opposition":   {Applying: 10, Separating: 8, Stable: 9},
			"square":       {Applying: 8, Separating: 6, Stable: 7},
			"trine":        {Applying: 8, Separating: 6, Stable: 7},
			"sextile":      {Applying: 6, Separating: 4, Stable: 5},
			"semisextile":  Symmetric(2),
			"semisquare":   Symmetric(2),
			"sesquisquare": Symmetric(2),
			"quincunx":     Symmetric(3),
			"quintile":     Symmetric(2),
			"biquintile":   Symmetric(2),
		},
	}
}

// For returns the orbs for aspect, falling back to the default orbs.
func (t *Table) For(aspect float64) Orbs {
	if o, ok := t.Orbs[strings.ToLower(Name(aspect))]; ok {
		return o
	}
	return t.Default
}

// Validate checks that every aspect lies on [0, 180] and every orb is
// non-negative.
func (t *Table) Validate() error {
	if len(t.Aspects) == 0 {
		return fmt.Errorf("orb table lists no aspects")
	}
	for _, a := range t.Aspects {
		if a < 0 || a > 180 || math.IsNaN(a) {
			return fmt.Errorf("aspect %v out of range [0, 180]", a)
		}
	}
	check := func(name string, o Orbs) error {
		if o.Applying < 0 || o.Separating < 0 || o.Stable < 0 {
			return fmt.Errorf("negative orb for %s", name)
		}
		return nil
	}
	if err := check("default", t.Default); err != nil {
		return err
	}
	for name, o := range t.Orbs {
		if _, err := Parse(name); err != nil {
			return fmt.Errorf("orbs for %w", err)
		}
		if err := check(name, o); err != nil {
			return err
		}
	}
	return nil
}

// LoadTable reads an orb table from a TOML file. Fields left out keep their
// DefaultTable values. A missing file yields the default table.
func LoadTable(path string) (*Table, error) {
	def := DefaultTable()
	if path == "" {
		return def, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return def, nil
		}
		return nil, fmt.Errorf("reading orb table: %w", err)
	}

	var t Table
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing orb table %s: %w", path, err)
	}
	if len(t.Aspects) == 0 {
		t.Aspects = def.Aspects
	}
	if t.Default == (Orbs{}) {
		t.Default = def.Default
	}
	for name, o := range t.Orbs {
		def.Orbs[strings.ToLower(name)] = o
	}
	t.Orbs = def.Orbs

	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("orb table %s: %w", path, err)
	}
	return &t, nil
}

// Save writes t as TOML.
func (t *Table) Save(path string) error {
	data, err := toml.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshaling orb table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing orb table: %w", err)
	}
	return nil
}
