/*
 * rational.go, part of gostoich.
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

import "math"

//RationalApprox returns num/den, with 0 < den <= maxDen, approximating x. It walks the
//convergents of the continued fraction of x and stops at the first one closer than tol
//to x, or at the last one whose denominator does not exceed maxDen.
//This recovers small fractions like 1/3 from solver output like 0.33333333329.
func RationalApprox(x float64, maxDen int64, tol float64) (int64, int64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, 1
	}
	if maxDen < 1 {
		maxDen = 1
	}
	var sign int64 = 1
	if x < 0 {
		sign = -1
		x = -x
	}
	//h and k are the numerators and denominators of the two previous convergents.
	var h1, h0 int64 = 1, 0
	var k1, k0 int64 = 0, 1
	b := x
	a := math.Floor(b)
	for {
		ai := int64(a)
		h := ai*h1 + h0
		k := ai*k1 + k0
		if k > maxDen {
			break
		}
		h0, h1 = h1, h
		k0, k1 = k1, k
		if math.Abs(float64(h1)/float64(k1)-x) < tol {
			break
		}
		frac := b - a
		if frac < 1e-15 {
			break //x is (numerically) exactly this convergent
		}
		b = 1 / frac
		if math.IsInf(b, 0) || b > math.MaxInt64/2 {
			break
		}
		a = math.Floor(b)
	}
	if k1 == 0 { //even the integer part was out of reach, can only happen for huge x
		return sign * int64(math.Round(x)), 1
	}
	return sign * h1, k1
}

//GCD returns the greatest common divisor of the absolute values of a and b.
//GCD(0,0) is 0.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

//LCM returns the least common multiple of the absolute values of a and b.
//It is 0 if either is 0.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	l := a / GCD(a, b) * b
	if l < 0 {
		l = -l
	}
	return l
}

//GCDMany returns the greatest common divisor of all the values in s.
func GCDMany(s []int64) int64 {
	var g int64
	for _, v := range s {
		g = GCD(g, v)
	}
	return g
}

//LCMMany returns the least common multiple of all the values in s, 1 for an empty slice.
func LCMMany(s []int64) int64 {
	var l int64 = 1
	for _, v := range s {
		l = LCM(l, v)
	}
	return l
}

//integerCoefficients turns the solution vector x into the smallest vector of integers
//proportional to it. Each element is approximated by a fraction, all are scaled by the LCM
//of the denominators, the sign is flipped if the smallest value is negative, and all are
//divided by their GCD. ok is false if any of the resulting integers is not positive.
func integerCoefficients(x []float64, maxDen int64, tol float64) ([]int64, bool) {
	if len(x) == 0 {
		return nil, false
	}
	nums := make([]int64, len(x))
	dens := make([]int64, len(x))
	for i, v := range x {
		nums[i], dens[i] = RationalApprox(v, maxDen, tol)
	}
	l := LCMMany(dens)
	coefs := make([]int64, len(x))
	for i := range nums {
		coefs[i] = nums[i] * (l / dens[i])
	}
	if minInt64(coefs) < 0 {
		for i := range coefs {
			coefs[i] = -coefs[i]
		}
	}
	g := GCDMany(coefs)
	if g == 0 {
		return coefs, false
	}
	for i := range coefs {
		coefs[i] /= g
		if coefs[i] <= 0 {
			return coefs, false
		}
	}
	return coefs, true
}
