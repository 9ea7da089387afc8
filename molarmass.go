/*
 * molarmass.go, part of gostoich.
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
	"strings"
)

//MassSource tells where a molar mass came from.
type MassSource int

const (
	SourceTable    MassSource = iota //the compound table
	SourceElements                   //sum of atomic masses
	SourceFallback                   //nothing was known, the fallback value was used
)

func (S MassSource) String() string {
	switch S {
	case SourceTable:
		return "table"
	case SourceElements:
		return "elements"
	case SourceFallback:
		return "fallback"
	}
	return "unknown"
}

//MarshalText allows MassSource to be used directly in JSON.
func (S MassSource) MarshalText() ([]byte, error) {
	return []byte(S.String()), nil
}

//Mass is a resolved molar mass, in g/mol.
type Mass struct {
	Value   float64
	Source  MassSource
	Unknown []string //element symbols that contributed nothing to Value
}

//Warning returns a human-readable note if the mass is approximate, or an empty string.
func (M Mass) Warning(formula string) string {
	switch {
	case M.Source == SourceFallback:
		return fmt.Sprintf("molar mass of %s is unknown, %.2f g/mol assumed", formula, M.Value)
	case len(M.Unknown) > 0:
		return fmt.Sprintf("molar mass of %s ignores unknown element(s) %s", formula, strings.Join(M.Unknown, ", "))
	}
	return ""
}

//MolarMass returns the molar mass of formula. The compound table is looked up first;
//if the formula is not there, the atomic masses of its elements are summed. If that gives
//zero, the fallback mass is returned together with an UnknownMolarMass error. The error is
//not critical: callers that don't mind the approximation can use the returned Mass.
func (O *Options) MolarMass(formula string) (Mass, error) {
	if c, ok := O.compounds().Lookup(formula); ok {
		return Mass{Value: c.MolarMass, Source: SourceTable}, nil
	}
	f, _ := SplitPhase(formula)
	comp := ParseFormula(f)
	var mm float64
	var unknown []string
	for _, el := range comp.Elements() {
		m, ok := AtomicMass(el)
		if !ok {
			unknown = append(unknown, el)
			continue
		}
		mm += m * float64(comp[el])
	}
	if mm > 0 {
		return Mass{Value: mm, Source: SourceElements, Unknown: unknown}, nil
	}
	ret := Mass{Value: O.FallbackMass, Source: SourceFallback, Unknown: unknown}
	return ret, newError(UnknownMolarMass, f, "no compound or element data", false, "MolarMass")
}

//MolarMass returns the molar mass of formula, in g/mol, with the default options.
//It never fails: formulas it knows nothing about get the fallback mass (100 g/mol).
func MolarMass(formula string) float64 {
	m, _ := DefaultOptions().MolarMass(formula)
	return m.Value
}
