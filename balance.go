/*
 * balance.go, part of gostoich.
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Balance returns a copy of R with the smallest positive integer coefficients that conserve
//every element. The coefficients in R are ignored, and R is not modified.
//
//The conservation matrix A (elements x species) defines the homogeneous system A·x = 0,
//whose solutions are only defined up to scale, so one coefficient is fixed to 1 and the rest
//are obtained by Gaussian elimination. The species to fix are tried from the last one to the
//first, until a solution is found that is finite, satisfies A·x = 0, and gives positive integer
//coefficients that conserve all elements exactly. Floating point solutions are turned into
//integers with continued fractions (see RationalApprox) and LCM/GCD normalization.
//
//If no solution is found, the returned copy has Balanced set to false, its original
//coefficients, and the error is an Unbalanceable Error. Such a reaction must not be used
//for stoichiometry.
func Balance(R *Reaction, o *Options) (*Reaction, error) {
	o = orDefault(o)
	ret := R.Copy()
	ret.Balanced = false
	if len(R.Reactants) == 0 || len(R.Products) == 0 {
		return ret, newError(Unbalanceable, R.String(), "a reaction needs at least one reactant and one product", true, "Balance")
	}
	elements := R.Elements()
	if len(elements) == 0 {
		return ret, newError(Unbalanceable, R.String(), "no elements found", true, "Balance")
	}
	A := conservationMatrix(R, elements)
	_, n := A.Dims()
	for fix := n - 1; fix >= 0; fix-- {
		coefs, ok := balanceFixed(A, fix, o)
		if !ok {
			continue
		}
		trial := ret.Copy()
		assignCoefficients(trial, coefs)
		if !trial.Conserved() {
			continue
		}
		trial.Balanced = true
		return trial, nil
	}
	return ret, newError(Unbalanceable, R.String(), fmt.Sprintf("no positive integer solution for %d species and %d elements", n, len(elements)), true, "Balance")
}

//Solutions with |A·x| above this (relative to the size of x) are discarded.
const residualTolerance = 1e-8

//balanceFixed solves the system with species fix set to 1, and returns the integer coefficients.
func balanceFixed(A *mat.Dense, fix int, o *Options) ([]int64, bool) {
	x, ok := solveFixed(A, fix, o)
	if !ok {
		return nil, false
	}
	res, err := residual(A, x)
	if err != nil || res > residualTolerance*(1+floats.Max(absAll(x))) {
		return nil, false
	}
	return integerCoefficients(x, o.MaxDenominator, o.RatTolerance)
}

//assignCoefficients sets the coefficients of R, reactants first, from coefs.
func assignCoefficients(R *Reaction, coefs []int64) {
	for i := range R.Reactants {
		R.Reactants[i].Coefficient = int(coefs[i])
	}
	nr := len(R.Reactants)
	for i := range R.Products {
		R.Products[i].Coefficient = int(coefs[nr+i])
	}
}

func absAll(x []float64) []float64 {
	ret := make([]float64, len(x))
	for i, v := range x {
		ret[i] = math.Abs(v)
	}
	return ret
}
