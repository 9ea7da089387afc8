/*
 * json.go, part of gostoich.
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

package stoichjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stoich "github.com/rmera/gostoich"
)

//An easily JSON-serializable error type.
type Error struct {
	deco     []string
	Kind     string `json:"kind,omitempty"`     //the stoich.Kind of the error, if it has one.
	Where    string `json:"where"`              //"request", "process" or "response"
	Function string `json:"function,omitempty"` //which go function gave the error
	Message  string `json:"error"`              //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//NewError returns an *Error for err, which happened at where ("request", "process" or
//"response") in the function function.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	switch where {
	case "request", "response":
		jerr.Where = where
	default:
		jerr.Where = "process"
	}
	jerr.Function = function
	jerr.Message = err.Error()
	jerr.Kind = string(stoich.KindOf(err))
	return jerr
}

//Species is a ready-to-serialize container for a reactant or product.
type Species struct {
	Formula     string  `json:"formula"`
	Phase       string  `json:"phase,omitempty"`
	Coefficient int     `json:"coefficient"`
	MolarMass   float64 `json:"molar_mass"`
	MassSource  string  `json:"mass_source"`
}

//BalanceRequest asks for a reaction to be balanced.
type BalanceRequest struct {
	Reaction string `json:"reaction"`
}

//BalanceResponse is a balanced (or not) reaction.
type BalanceResponse struct {
	Input     string    `json:"input,omitempty"`
	Reactants []Species `json:"reactants"`
	Products  []Species `json:"products"`
	Balanced  bool      `json:"balanced"`
	Equation  string    `json:"equation"`
	Warnings  []string  `json:"warnings,omitempty"`
	Error     *Error    `json:"error,omitempty"`
}

//Entry is an amount of a reactant.
type Entry struct {
	Compound string  `json:"compound"`
	Mass     float64 `json:"mass_g"`
}

//StoichRequest asks for a stoichiometry calculation.
type StoichRequest struct {
	Reaction  string  `json:"reaction"`
	Reactants []Entry `json:"reactants"`
	Target    string  `json:"target,omitempty"`
}

//Entries returns the reactant amounts in the request as stoich Entries.
func (S *StoichRequest) Entries() []stoich.Entry {
	ret := make([]stoich.Entry, len(S.Reactants))
	for i, v := range S.Reactants {
		ret[i] = stoich.Entry{Compound: v.Compound, Mass: v.Mass}
	}
	return ret
}

//StoichResponse contains the results of a stoichiometry calculation.
type StoichResponse struct {
	Reaction         *BalanceResponse   `json:"reaction,omitempty"`
	Target           string             `json:"target"`
	TheoreticalYield float64            `json:"theoretical_yield"`
	TheoreticalMoles float64            `json:"theoretical_moles"`
	Extent           float64            `json:"extent"`
	LimitingReagent  *string            `json:"limiting_reagent"` //null if there is none
	Excess           map[string]float64 `json:"excess_reagents"`
	MoleRatios       map[string]int     `json:"mole_ratios"`
	Equation         string             `json:"balanced_equation"`
	Steps            []string           `json:"calc_steps"`
	Warnings         []string           `json:"warnings,omitempty"`
}

func fromSpecies(s []stoich.Species) []Species {
	ret := make([]Species, len(s))
	for i, v := range s {
		ret[i] = Species{Formula: v.Formula, Phase: v.Phase, Coefficient: v.Coefficient, MolarMass: v.MolarMass, MassSource: v.MassSource.String()}
	}
	return ret
}

//FromReaction returns a ready-to-serialize version of R. err, if not nil, is included.
func FromReaction(input string, R *stoich.Reaction, err error) *BalanceResponse {
	ret := &BalanceResponse{Input: input}
	if R != nil {
		ret.Reactants = fromSpecies(R.Reactants)
		ret.Products = fromSpecies(R.Products)
		ret.Balanced = R.Balanced
		ret.Equation = R.Pretty()
		ret.Warnings = R.Warnings
	}
	if err != nil {
		ret.Error = NewError("process", "FromReaction", err)
	}
	return ret
}

//FromResult returns a ready-to-serialize version of res, obtained from the reaction R.
func FromResult(R *stoich.Reaction, res *stoich.Result) *StoichResponse {
	ret := &StoichResponse{
		Target:           res.Target,
		TheoreticalYield: res.TheoreticalYield,
		TheoreticalMoles: res.TheoreticalMoles,
		Extent:           res.Extent,
		Excess:           res.Excess,
		MoleRatios:       res.MoleRatios,
		Equation:         res.Equation,
		Steps:            res.Steps,
		Warnings:         res.Warnings,
	}
	if res.LimitingReagent != "" {
		l := res.LimitingReagent
		ret.LimitingReagent = &l
	}
	if R != nil {
		ret.Reaction = FromReaction("", R, nil)
	}
	return ret
}

//Send Marshals v and writes it to out, followed by a newline.
func Send(out io.Writer, v any) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(v); err != nil {
		return NewError("response", "Send", err)
	}
	return nil
}

//Decode reads one JSON value from in into v. Unknown fields are an error.
func Decode(in io.Reader, v any) *Error {
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return NewError("request", "Decode", fmt.Errorf("decoding %T: %w", v, err))
	}
	return nil
}

//DecodeLine decodes a request that takes exactly one line of stream.
func DecodeLine(stream *bufio.Reader, v any) *Error {
	line, err := stream.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return NewError("request", "DecodeLine", err)
	}
	if err := json.Unmarshal(line, v); err != nil {
		return NewError("request", "DecodeLine", err)
	}
	return nil
}
