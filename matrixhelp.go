/*
 * matrixhelp.go, part of gostoich.
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

//A munch of unexported linear algebra functions for the balancer, on top of gonum.

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//conservationMatrix returns the elements x species matrix of signed atom counts:
//positive for reactants, negative for products, so that A·x = 0 for a balanced
//coefficient vector x.
func conservationMatrix(R *Reaction, elements []string) *mat.Dense {
	species := R.Species()
	A := mat.NewDense(len(elements), len(species), nil)
	for j, s := range species {
		comp := s.Composition()
		sign := 1.0
		if j >= len(R.Reactants) {
			sign = -1.0
		}
		for i, el := range elements {
			A.Set(i, j, sign*float64(comp[el]))
		}
	}
	return A
}

//solveFixed solves A·x = 0 with x[fix] = 1. The remaining unknowns are found by Gauss-Jordan
//elimination with partial pivoting on the m x (n-1) system B·y = -A[:,fix].
//Free unknowns are set to 0. It returns false if the system is inconsistent or the solution
//is not finite.
func solveFixed(A *mat.Dense, fix int, o *Options) ([]float64, bool) {
	m, n := A.Dims()
	nv := n - 1
	if m == 0 || nv == 0 {
		return nil, false
	}
	aug := mat.NewDense(m, nv+1, nil)
	for i := 0; i < m; i++ {
		c := 0
		for j := 0; j < n; j++ {
			if j == fix {
				continue
			}
			aug.Set(i, c, A.At(i, j))
			c++
		}
		aug.Set(i, nv, -A.At(i, fix))
	}
	r := 0
	for c := 0; c < nv && r < m; c++ {
		piv := r
		for i := r + 1; i < m; i++ {
			if math.Abs(aug.At(i, c)) > math.Abs(aug.At(piv, c)) {
				piv = i
			}
		}
		if math.Abs(aug.At(piv, c)) < o.PivotEpsilon {
			continue
		}
		swapRows(aug, r, piv)
		rrow := aug.RawRowView(r)
		floats.Scale(1/rrow[c], rrow[c:])
		for i := 0; i < m; i++ {
			if i == r {
				continue
			}
			irow := aug.RawRowView(i)
			if factor := irow[c]; factor != 0 {
				floats.AddScaled(irow[c:], -factor, rrow[c:])
			}
		}
		r++
	}
	y := make([]float64, nv)
	for i := 0; i < m; i++ {
		row := aug.RawRowView(i)
		lead := -1
		for j := 0; j < nv; j++ {
			if math.Abs(row[j]) > o.LeadEpsilon {
				lead = j
				break
			}
		}
		if lead < 0 {
			if math.Abs(row[nv]) > o.LeadEpsilon {
				return nil, false //0 = something, no solution with this fixed unknown.
			}
			continue
		}
		y[lead] = row[nv]
	}
	if floats.HasNaN(y) {
		return nil, false
	}
	x := make([]float64, 0, n)
	x = append(x, y[:fix]...)
	x = append(x, 1)
	x = append(x, y[fix:]...)
	for _, v := range x {
		if math.IsInf(v, 0) {
			return nil, false
		}
	}
	return x, true
}

//swapRows exchanges rows i and j of A, in place.
func swapRows(A *mat.Dense, i, j int) {
	if i == j {
		return
	}
	ri := A.RawRowView(i)
	rj := A.RawRowView(j)
	tmp := make([]float64, len(ri))
	copy(tmp, ri)
	copy(ri, rj)
	copy(rj, tmp)
}

//residual returns the infinity norm of A·x.
func residual(A *mat.Dense, x []float64) (float64, error) {
	m, _ := A.Dims()
	r := mat.NewVecDense(m, nil)
	err := gnMaybe(func() { r.MulVec(A, mat.NewVecDense(len(x), x)) })
	if err != nil {
		return 0, err
	}
	return floats.Norm(r.RawVector().Data, math.Inf(1)), nil
}

// A gnPanicker is a function that may panic.
type gnPanicker func()

//gnMaybe will recover a panic with a type mat.Error from fn, and return it as an error.
//Any other panic is re-panicked.
func gnMaybe(fn gnPanicker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case mat.Error:
				err = fmt.Errorf("gostoich: error in gonum function: %s", e.Error())
			default:
				panic(r)
			}
		}
	}()
	fn()
	return err
}
