/*
 * doc.go, part of gostoich.
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

/*Package stoich is the main package of the gostoich library. It parses chemical formulas
and reactions, balances chemical equations and carries out the usual stoichiometry
calculations (limiting reagent, theoretical yield, excess reagents) of a general
chemistry course.



	**gostoich Capabilities**


    Parses formulas with nested groups, e.g. Ca3(PO4)2, and Unicode subscripts
	(H₂O is the same as H2O).

    Molar masses from a table of common compounds (which can be extended from a
	YAML file) or, failing that, from atomic masses. Unknown formulas get a fallback
	value, and an error tells the caller that it happened.

    Parses reactions with any of the arrows →, ->, ⟶ and =>, with or without
	coefficients.

    Balances reactions by solving the atom conservation system with Gaussian
	elimination (gonum is used for the matrix work) and recovering small integer
	coefficients with continued fractions.

    Finds the limiting reagent, the reaction extent, the theoretical yield of any
	product and the excess of the other reactants, with a list of human-readable
	calculation steps.

All functions are pure: they take their inputs and Options and return new values, so
they can be used concurrently. The subpackages provide JSON transport (stoichjson),
batch processing of compressed files (batch), a calculation log (history) and an
HTTP server (server).

The library is lenient by default, as it is meant for teaching: malformed input gives
best-effort results plus warnings. Set Options.Strict to turn those warnings into errors.
Unbalanceable reactions are always errors, and Evaluate refuses to work with them.*/
package stoich
