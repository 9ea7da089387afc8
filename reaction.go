/*
 * reaction.go, part of gostoich.
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
	"regexp"
	"strconv"
	"strings"
)

//DefaultReaction is used when the input has no reaction arrow.
const DefaultReaction = "H₂ + O₂ → H₂O"

var arrowRe = regexp.MustCompile(`→|->|⟶|=>`)
var coefficientRe = regexp.MustCompile(`^([0-9]+)(.+)$`)

//Species is one reactant or product.
type Species struct {
	Formula     string     //normalized: ASCII digits, no white space, no phase tag.
	Phase       string     //s, l, g, aq or empty.
	MolarMass   float64    //g/mol
	MassSource  MassSource //where MolarMass came from
	Coefficient int
}

//Composition returns the atom counts of the species' formula.
func (S Species) Composition() Composition {
	return ParseFormula(S.Formula)
}

//String returns the species with its coefficient, if different from 1.
func (S Species) String() string {
	if S.Coefficient != 1 {
		return fmt.Sprintf("%d%s", S.Coefficient, S.Formula)
	}
	return S.Formula
}

//Reaction is a chemical equation. When Balanced is true, all elements are conserved.
type Reaction struct {
	Reactants []Species
	Products  []Species
	Balanced  bool
	Warnings  []string //non-fatal problems found while parsing
}

//Copy returns a deep copy of the reaction.
func (R *Reaction) Copy() *Reaction {
	if R == nil {
		panic("Attempted to copy a nil reaction")
	}
	ret := new(Reaction)
	ret.Reactants = append([]Species(nil), R.Reactants...)
	ret.Products = append([]Species(nil), R.Products...)
	ret.Balanced = R.Balanced
	ret.Warnings = append([]string(nil), R.Warnings...)
	return ret
}

//Species returns all the reactants followed by all the products.
func (R *Reaction) Species() []Species {
	ret := make([]Species, 0, len(R.Reactants)+len(R.Products))
	ret = append(ret, R.Reactants...)
	return append(ret, R.Products...)
}

//Coefficients returns the coefficients of all species, reactants first.
func (R *Reaction) Coefficients() []int {
	sp := R.Species()
	ret := make([]int, len(sp))
	for i, v := range sp {
		ret[i] = v.Coefficient
	}
	return ret
}

//Masses returns the molar masses of all species, reactants first.
func (R *Reaction) Masses() []float64 {
	sp := R.Species()
	ret := make([]float64, len(sp))
	for i, v := range sp {
		ret[i] = v.MolarMass
	}
	return ret
}

//Reactant returns the index of the reactant with the given formula, or -1.
func (R *Reaction) Reactant(formula string) int {
	return speciesIndex(R.Reactants, formula)
}

//Product returns the index of the product with the given formula, or -1.
func (R *Reaction) Product(formula string) int {
	return speciesIndex(R.Products, formula)
}

//Elements returns the elements present in the reaction, in order of first appearance.
func (R *Reaction) Elements() []string {
	ret := make([]string, 0, 4)
	for _, s := range R.Species() {
		for _, el := range s.Composition().Elements() {
			if !isInString(ret, el) {
				ret = append(ret, el)
			}
		}
	}
	return ret
}

//Conserved returns true if, with the current coefficients, every element has the same
//number of atoms on both sides. The check uses integer arithmetic only.
func (R *Reaction) Conserved() bool {
	if len(R.Reactants) == 0 || len(R.Products) == 0 {
		return false
	}
	left := sideAtoms(R.Reactants)
	right := sideAtoms(R.Products)
	return left.Equal(right)
}

func sideAtoms(side []Species) Composition {
	ret := Composition{}
	for _, s := range side {
		c := s.Composition()
		c.Scale(s.Coefficient)
		ret.Add(c)
	}
	//elements with zero atoms (e.g. "H0") should not break the comparison
	for k, v := range ret {
		if v == 0 {
			delete(ret, k)
		}
	}
	return ret
}

//String returns the reaction in plain ASCII, e.g. "2H2 + O2 -> 2H2O".
func (R *Reaction) String() string {
	return joinSide(R.Reactants, false) + " -> " + joinSide(R.Products, false)
}

//Pretty returns the reaction with subscripts and a proper arrow, e.g. "2H₂ + O₂ → 2H₂O".
func (R *Reaction) Pretty() string {
	return joinSide(R.Reactants, true) + " → " + joinSide(R.Products, true)
}

func joinSide(side []Species, pretty bool) string {
	s := make([]string, len(side))
	for i, v := range side {
		f := v.Formula
		if pretty {
			f = Subscript(f)
		}
		if v.Coefficient != 1 {
			f = strconv.Itoa(v.Coefficient) + f
		}
		s[i] = f
	}
	return strings.Join(s, " + ")
}

//ParseReaction reads a reaction such as "2 H₂ + O₂ → 2 H₂O". The arrow can be
//any of →, ->, ⟶ or =>. Species are separated by '+' and can have a leading integer
//coefficient (1 if absent). Molar masses are resolved with o (nil means DefaultOptions).
//The returned reaction is never balanced.
//Without an arrow, DefaultReaction is parsed instead and a warning is added, unless
//o.Strict is set, in which case an error is returned. Unknown molar masses are also
//warnings (errors in strict mode).
func ParseReaction(input string, o *Options) (*Reaction, error) {
	o = orDefault(o)
	R := new(Reaction)
	parts := arrowRe.Split(input, -1)
	if len(parts) < 2 {
		if o.Strict {
			return nil, newError(MalformedReaction, input, "no reaction arrow", true, "ParseReaction")
		}
		R.Warnings = append(R.Warnings, fmt.Sprintf("no reaction arrow in %q, using %s", input, DefaultReaction))
		parts = arrowRe.Split(DefaultReaction, -1)
	}
	if len(parts) > 2 {
		R.Warnings = append(R.Warnings, fmt.Sprintf("more than one arrow in %q, only the first two sides are used", input))
	}
	var err error
	R.Reactants, err = parseSide(parts[0], o, &R.Warnings)
	if err != nil {
		return nil, errDecorate(err, "ParseReaction")
	}
	R.Products, err = parseSide(parts[1], o, &R.Warnings)
	if err != nil {
		return nil, errDecorate(err, "ParseReaction")
	}
	if o.Strict && (len(R.Reactants) == 0 || len(R.Products) == 0) {
		return nil, newError(MalformedReaction, input, "a reaction needs at least one reactant and one product", true, "ParseReaction")
	}
	return R, nil
}

func parseSide(side string, o *Options, warnings *[]string) ([]Species, error) {
	tokens := strings.Split(side, "+")
	ret := make([]Species, 0, len(tokens))
	for _, t := range tokens {
		t = Normalize(t)
		if t == "" {
			continue
		}
		coef := 1
		if m := coefficientRe.FindStringSubmatch(t); m != nil {
			//The regexp guarantees digits, so the only possible error is an overflow.
			c, err := strconv.Atoi(m[1])
			if err == nil && c > 0 {
				coef = c
			}
			t = m[2]
		}
		f, phase := SplitPhase(t)
		mass, err := o.MolarMass(f)
		if err != nil {
			if o.Strict {
				return nil, err
			}
		}
		if w := mass.Warning(f); w != "" {
			*warnings = append(*warnings, w)
		}
		ret = append(ret, Species{Formula: f, Phase: phase, MolarMass: mass.Value, MassSource: mass.Source, Coefficient: coef})
	}
	return ret, nil
}
