/*
 * interfaces.go, part of gostoich.
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

//Decorator is implemented by the errors in this library and its subpackages. The Decorate method
//adds information when the error is passed up, without changing its type or wrapping it.
//Each call returns the "decoration" slice resulting from the current call. An empty string
//does not add anything, just returns the current value.
type Decorator interface {
	Error() string
	Decorate(string) []string
}

//MassResolver is anything that can give the molar mass (g/mol) of a formula.
//The returned error is informative: if it is an UnknownMolarMass Error, the Mass still
//carries a usable (fallback) value.
type MassResolver interface {
	MolarMass(formula string) (Mass, error)
}

//Masser can return the molar masses of all its species.
type Masser interface {
	Masses() []float64
}

var (
	_ Decorator    = Error{}
	_ MassResolver = (*Options)(nil)
	_ Masser       = (*Reaction)(nil)
)
