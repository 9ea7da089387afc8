/*
 * stoichiometry.go, part of gostoich.
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
	"math"
)

//Entry is an amount of a reactant, given by the user.
type Entry struct {
	Compound string
	Mass     float64 //g
}

//Result contains the outcome of a stoichiometry calculation. It is recomputed
//from scratch for each calculation.
type Result struct {
	Target           string  //the product whose yield was computed
	TheoreticalMoles float64 //mol of Target
	TheoreticalYield float64 //g of Target
	Extent           float64 //reaction extent, mol
	LimitingReagent  string  //empty if only one reactant amount was given
	Excess           map[string]float64
	MoleRatios       map[string]int
	Equation         string
	Steps            []string
	Warnings         []string
}

//reactantAmount is a validated entry, merged by compound.
type reactantAmount struct {
	formula string
	grams   float64
	moles   float64
	coef    int
	mm      float64
}

//Evaluate computes the theoretical yield of target (the first product if target is empty) from
//the reactant masses in entries, using the balanced reaction R. With two or more reactant amounts,
//the reactant with the smallest moles/coefficient ratio is the limiting reagent and sets the
//reaction extent; with only one, that reactant alone sets it. The remaining moles of the other
//reactants are reported as excess, never negative.
//
//Entries with a non-finite or non-positive mass, or with a compound that is not a reactant of R,
//are dropped with a warning. Repeated compounds are summed. The function fails if R is not balanced
//or if no valid entry is left. An unknown target is a warning (an error if o.Strict is set), and
//a coefficient of 1 is assumed for it.
func Evaluate(R *Reaction, entries []Entry, target string, o *Options) (*Result, error) {
	o = orDefault(o)
	if R == nil || !R.Balanced {
		return nil, newError(NotBalanced, "", "balance the reaction before computing yields", true, "Evaluate")
	}
	ret := &Result{
		Excess:     make(map[string]float64),
		MoleRatios: make(map[string]int),
		Equation:   R.Pretty(),
	}
	for _, s := range R.Species() {
		ret.MoleRatios[s.Formula] = s.Coefficient
	}
	amounts := make([]*reactantAmount, 0, len(entries))
	for _, e := range entries {
		f, _ := SplitPhase(e.Compound)
		if f == "" {
			continue
		}
		if !validMass(e.Mass) {
			ret.Warnings = append(ret.Warnings, fmt.Sprintf("ignoring %s: mass must be a positive number, got %g", f, e.Mass))
			continue
		}
		idx := R.Reactant(f)
		if idx < 0 {
			ret.Warnings = append(ret.Warnings, fmt.Sprintf("ignoring %s: not a reactant in %s", f, R.String()))
			continue
		}
		if a := findAmount(amounts, f); a != nil {
			ret.Warnings = append(ret.Warnings, fmt.Sprintf("%s given more than once, masses were added", f))
			a.grams += e.Mass
			continue
		}
		sp := R.Reactants[idx]
		amounts = append(amounts, &reactantAmount{formula: f, grams: e.Mass, coef: floorCoefficient(sp.Coefficient), mm: sp.MolarMass})
	}
	if len(amounts) == 0 {
		return nil, newError(NoReactantData, R.String(), "", true, "Evaluate")
	}
	for _, a := range amounts {
		a.moles = Moles(a.grams, a.mm)
		ret.Steps = append(ret.Steps, fmt.Sprintf("%.1f g %s ÷ %.2f g/mol = %.3f mol %s", a.grams, a.formula, a.mm, a.moles, a.formula))
	}

	if target == "" && len(R.Products) > 0 {
		target = R.Products[0].Formula
	}
	target, _ = SplitPhase(target)
	ret.Target = target
	targetCoef := 1
	var targetMM float64
	if idx := R.Product(target); idx >= 0 {
		targetCoef = floorCoefficient(R.Products[idx].Coefficient)
		targetMM = R.Products[idx].MolarMass
	} else {
		if o.Strict {
			return nil, newError(UnknownTarget, target, "not a product of "+R.String(), true, "Evaluate")
		}
		ret.Warnings = append(ret.Warnings, fmt.Sprintf("%s is not a product of %s, a coefficient of 1 is assumed", target, R.String()))
		m, _ := o.MolarMass(target)
		if w := m.Warning(target); w != "" {
			ret.Warnings = append(ret.Warnings, w)
		}
		targetMM = m.Value
	}

	if len(amounts) >= 2 {
		minVal := math.Inf(1)
		var limiting *reactantAmount
		for _, a := range amounts {
			val := a.moles / float64(a.coef)
			ret.Steps = append(ret.Steps, fmt.Sprintf("%s: %.3f mol ÷ %d (coeff) = %.3f", a.formula, a.moles, a.coef, val))
			if val < minVal {
				minVal = val
				limiting = a
			}
		}
		ret.Extent = minVal
		ret.LimitingReagent = limiting.formula
		ret.Steps = append(ret.Steps, fmt.Sprintf("(%.3f is smallest, so %s is limiting)", minVal, limiting.formula))
		for _, a := range amounts {
			if a == limiting {
				continue
			}
			ret.Excess[a.formula] = math.Max(0, a.moles-ret.Extent*float64(a.coef))
		}
	} else {
		a := amounts[0]
		ret.Extent = a.moles / float64(a.coef)
		ret.Steps = append(ret.Steps, fmt.Sprintf("%s: %.3f mol ÷ %d (coeff) = %.3f", a.formula, a.moles, a.coef, ret.Extent))
	}
	ret.TheoreticalMoles = ret.Extent * float64(targetCoef)
	ret.TheoreticalYield = Grams(ret.TheoreticalMoles, targetMM)
	ret.Steps = append(ret.Steps, fmt.Sprintf("%.3f mol × %d (coeff) = %.3f mol %s × %.2f g/mol = %.2f g %s",
		ret.Extent, targetCoef, ret.TheoreticalMoles, target, targetMM, ret.TheoreticalYield, target))
	return ret, nil
}

//Calculate parses input, balances it and evaluates the yield of target from entries.
//The balanced reaction is returned even if the evaluation fails. Warnings from parsing
//are copied to the Result.
func Calculate(input string, entries []Entry, target string, o *Options) (*Reaction, *Result, error) {
	R, err := ParseReaction(input, o)
	if err != nil {
		return nil, nil, errDecorate(err, "Calculate")
	}
	B, err := Balance(R, o)
	if err != nil {
		return B, nil, errDecorate(err, "Calculate")
	}
	res, err := Evaluate(B, entries, target, o)
	if err != nil {
		return B, nil, errDecorate(err, "Calculate")
	}
	res.Warnings = append(append([]string(nil), B.Warnings...), res.Warnings...)
	return B, res, nil
}

//floorCoefficient keeps degenerate coefficients from causing divisions by zero.
func floorCoefficient(c int) int {
	if c < 1 {
		return 1
	}
	return c
}

func findAmount(amounts []*reactantAmount, formula string) *reactantAmount {
	for _, a := range amounts {
		if a.formula == formula {
			return a
		}
	}
	return nil
}
