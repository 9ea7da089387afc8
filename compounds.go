/*
 * compounds.go, part of gostoich.
 *
 *
 * Copyright 2026 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * gostoich is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package stoich

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

//Compound is an entry of a compound table, with an authoritative molar mass.
type Compound struct {
	Formula   string  `yaml:"formula" json:"formula"` //canonical: ASCII digits, no spaces, no phase tag.
	Name      string  `yaml:"name,omitempty" json:"name,omitempty"`
	Phase     string  `yaml:"phase,omitempty" json:"phase,omitempty"`
	MolarMass float64 `yaml:"molar_mass" json:"molar_mass"`
}

//Compounds is a table of compounds keyed by canonical formula. It is read-only after
//construction, so it can be shared between goroutines.
type Compounds struct {
	m map[string]Compound
}

var defaultCompounds = []Compound{
	{"H2O", "water", "l", 18.02},
	{"CO2", "carbon dioxide", "g", 44.01},
	{"NaCl", "sodium chloride", "s", 58.44},
	{"HCl", "hydrogen chloride", "g", 36.46},
	{"NaOH", "sodium hydroxide", "s", 40.00},
	{"H2SO4", "sulfuric acid", "l", 98.08},
	{"CaCO3", "calcium carbonate", "s", 100.09},
	{"NH3", "ammonia", "g", 17.03},
	{"CH4", "methane", "g", 16.04},
	{"O2", "oxygen", "g", 32.00},
	{"N2", "nitrogen", "g", 28.02},
	{"H2", "hydrogen", "g", 2.02},
	{"CaO", "calcium oxide", "s", 56.08},
	{"Fe2O3", "iron(III) oxide", "s", 159.69},
	{"Al2O3", "aluminium oxide", "s", 101.96},
	{"Cu", "copper", "s", 63.55},
	{"Ag", "silver", "s", 107.87},
	{"Au", "gold", "s", 196.97},
	{"Fe", "iron", "s", 55.85},
	{"Al", "aluminium", "s", 26.98},
}

//NewCompounds builds a table from the given entries. Formulas are canonicalized
//(subscripts and phase tags are accepted). A later entry replaces an earlier one
//with the same canonical formula.
func NewCompounds(entries []Compound) (*Compounds, error) {
	C := &Compounds{m: make(map[string]Compound, len(entries))}
	for i, c := range entries {
		f, phase := SplitPhase(c.Formula)
		if f == "" {
			return nil, fmt.Errorf("compound %d: empty formula", i)
		}
		if !(c.MolarMass > 0) {
			return nil, fmt.Errorf("compound %d (%s): molar mass must be positive, got %g", i, f, c.MolarMass)
		}
		c.Formula = f
		if c.Phase == "" {
			c.Phase = phase
		}
		C.m[f] = c
	}
	return C, nil
}

//DefaultCompounds returns the built-in table of common compounds.
func DefaultCompounds() *Compounds {
	C, err := NewCompounds(defaultCompounds)
	if err != nil {
		panic("stoich: invalid built-in compound table: " + err.Error()) //can't happen
	}
	return C
}

//LoadCompounds reads a YAML list of compounds, for instance:
//
//	- formula: C₆H₁₂O₆
//	  name: glucose
//	  molar_mass: 180.16
func LoadCompounds(r io.Reader) (*Compounds, error) {
	var entries []Compound
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&entries); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading compound table: %w", err)
	}
	return NewCompounds(entries)
}

//Merge returns a new table with the entries of both C and other. Entries in other
//take precedence. C is not modified.
func (C *Compounds) Merge(other *Compounds) *Compounds {
	ret := &Compounds{m: make(map[string]Compound, C.Len()+other.Len())}
	if C != nil {
		for k, v := range C.m {
			ret.m[k] = v
		}
	}
	if other != nil {
		for k, v := range other.m {
			ret.m[k] = v
		}
	}
	return ret
}

//Lookup returns the compound for formula. The formula is canonicalized first, so
//"H₂O", "H2O" and "H2O(l)" all find the same entry.
func (C *Compounds) Lookup(formula string) (Compound, bool) {
	if C == nil {
		return Compound{}, false
	}
	f, _ := SplitPhase(formula)
	c, ok := C.m[f]
	return c, ok
}

//Len returns the number of compounds in the table.
func (C *Compounds) Len() int {
	if C == nil {
		return 0
	}
	return len(C.m)
}

//List returns all the compounds, sorted by formula.
func (C *Compounds) List() []Compound {
	ret := make([]Compound, 0, C.Len())
	if C == nil {
		return ret
	}
	for _, v := range C.m {
		ret = append(ret, v)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Formula < ret[j].Formula })
	return ret
}
