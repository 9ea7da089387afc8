/*
 * atomicdata.go, part of gostoich.
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

//A map for assigning standard atomic masses (g/mol) to elements.
//Not the whole periodic table, but what one finds in general chemistry
//courses. Symbols not here contribute 0 to a molar mass.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.003,
	"Li": 6.941,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  19.00,
	"Ne": 20.18,
	"Na": 22.99,
	"Mg": 24.31,
	"Al": 26.98,
	"Si": 28.09,
	"P":  30.97,
	"S":  32.07,
	"Cl": 35.45,
	"Ar": 39.95,
	"K":  39.10,
	"Ca": 40.08,
	"Sc": 44.96,
	"Ti": 47.87,
	"V":  50.94,
	"Cr": 52.00,
	"Mn": 54.94,
	"Fe": 55.85,
	"Co": 58.93,
	"Ni": 58.69,
	"Cu": 63.55,
	"Zn": 65.38,
	"Ga": 69.72,
	"Ge": 72.63,
	"As": 74.92,
	"Se": 78.97,
	"Br": 79.90,
	"Kr": 83.80,
	"Rb": 85.47,
	"Sr": 87.62,
	"Mo": 95.95,
	"Ag": 107.87,
	"Sn": 118.71,
	"I":  126.90, //heavier elements beyond the general-chemistry set
	"Cs": 132.91,
	"Ba": 137.33,
	"Pt": 195.08,
	"Au": 196.97,
	"Hg": 200.59,
	"Pb": 207.2,
}

//AtomicMass returns the atomic mass of the element with the given symbol,
//and false if the symbol is not known.
func AtomicMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

//KnownElement returns true if symbol is a known element symbol.
func KnownElement(symbol string) bool {
	_, ok := symbolMass[symbol]
	return ok
}
