/*
 * options.go, part of gostoich.
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

//Default numerical tolerances. They are engineering choices, not part of any contract.
const (
	DefaultPivotEpsilon   = 1e-12 //pivots smaller than this are considered zero
	DefaultLeadEpsilon    = 1e-10 //same, when looking for the leading entry of a reduced row
	DefaultRatTolerance   = 1e-6  //continued fraction convergence
	DefaultMaxDenominator = 1000
	DefaultFallbackMass   = 100.0 //g/mol, used when nothing is known about a formula
)

//Options contains the tolerances and tables used for parsing, balancing and
//stoichiometry calculations. The zero value is not useful, use DefaultOptions.
type Options struct {
	PivotEpsilon   float64
	LeadEpsilon    float64
	RatTolerance   float64
	MaxDenominator int64
	FallbackMass   float64
	//If Strict is true, situations that are normally just reported as warnings
	//(unknown molar masses, reactions without an arrow, unknown targets) become errors.
	Strict    bool
	Compounds *Compounds //if nil, the built-in table is used.
}

var builtinCompounds = DefaultCompounds()

//DefaultOptions returns the options that reproduce the behavior of the
//classroom Stoich Lab calculator.
func DefaultOptions() *Options {
	r := new(Options)
	r.PivotEpsilon = DefaultPivotEpsilon
	r.LeadEpsilon = DefaultLeadEpsilon
	r.RatTolerance = DefaultRatTolerance
	r.MaxDenominator = DefaultMaxDenominator
	r.FallbackMass = DefaultFallbackMass
	r.Compounds = builtinCompounds
	return r
}

//StrictOptions are DefaultOptions with Strict set.
func StrictOptions() *Options {
	r := DefaultOptions()
	r.Strict = true
	return r
}

//orDefault lets all functions accept nil options.
func orDefault(o *Options) *Options {
	if o == nil {
		return DefaultOptions()
	}
	return o
}

func (O *Options) compounds() *Compounds {
	if O.Compounds == nil {
		return builtinCompounds
	}
	return O.Compounds
}
