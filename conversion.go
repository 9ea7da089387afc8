/*
 * conversion.go, part of gostoich.
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

//This provides the mass/amount conversions used in stoichiometry.

//Moles returns the amount of substance, in mol, in grams g of a substance
//with molar mass mm (g/mol). It returns 0 if mm is not positive.
func Moles(g, mm float64) float64 {
	if !(mm > 0) {
		return 0
	}
	return g / mm
}

//Grams returns the mass, in g, of mol moles of a substance with molar mass mm (g/mol).
func Grams(mol, mm float64) float64 {
	return mol * mm
}

//validMass returns true if m is a finite, positive mass.
func validMass(m float64) bool {
	return !math.IsNaN(m) && !math.IsInf(m, 0) && m > 0
}
