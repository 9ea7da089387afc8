/*
 * errors.go, part of gostoich.
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
	"errors"
	"fmt"
)

//Kind classifies the errors returned by the library.
type Kind string

const (
	UnknownMolarMass  Kind = "unknown molar mass"
	MalformedReaction Kind = "malformed reaction"
	Unbalanceable     Kind = "unbalanceable reaction"
	NotBalanced       Kind = "reaction not balanced"
	NoReactantData    Kind = "no valid reactant data"
	UnknownTarget     Kind = "unknown target compound"
)

//Sentinels to be used with errors.Is. Any Error of the same Kind matches.
var (
	ErrUnknownMolarMass  = Error{kind: UnknownMolarMass}
	ErrMalformedReaction = Error{kind: MalformedReaction}
	ErrUnbalanceable     = Error{kind: Unbalanceable}
	ErrNotBalanced       = Error{kind: NotBalanced}
	ErrNoReactantData    = Error{kind: NoReactantData}
	ErrUnknownTarget     = Error{kind: UnknownTarget}
)

//Error is the error type for the stoich package. It fulfills the Decorator interface.
type Error struct {
	message  string
	kind     Kind
	formula  string //the formula or reaction with problems, or empty string if none.
	deco     []string
	critical bool
}

func newError(kind Kind, formula, message string, critical bool, deco ...string) Error {
	return Error{message: message, kind: kind, formula: formula, deco: deco, critical: critical}
}

func (err Error) Error() string {
	msg := string(err.kind)
	if err.message != "" {
		msg = fmt.Sprintf("%s: %s", msg, err.message)
	}
	if err.formula != "" {
		msg = fmt.Sprintf("%s (%s)", msg, err.formula)
	}
	return msg
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Kind returns the kind of the error
func (err Error) Kind() Kind { return err.kind }

//Formula returns the formula or reaction that caused the error, if any.
func (err Error) Formula() string { return err.formula }

//Critical is false for errors that come together with a usable (if approximate) value,
//like the fallback molar mass.
func (err Error) Critical() bool { return err.critical }

//Is reports whether target is an Error of the same kind.
func (err Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}
	return t.kind == err.kind
}

//KindOf returns the Kind of err, or an empty Kind if err is not (and does not wrap) an Error.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}

func errDecorate(err error, caller string) error {
	var e Error
	if !errors.As(err, &e) {
		return err
	}
	e.deco = e.Decorate(caller)
	return e
}
