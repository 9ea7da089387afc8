/*
 * formula.go, part of gostoich.
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
	"sort"
	"strings"
	"unicode"
)

//Composition maps element symbols to the number of atoms of that element.
//Symbols are case-sensitive ("Co" is not "CO"). Counts are never negative.
type Composition map[string]int

//Atoms returns the total number of atoms in the composition.
func (C Composition) Atoms() int {
	t := 0
	for _, v := range C {
		t += v
	}
	return t
}

//Elements returns the element symbols in the composition, sorted.
func (C Composition) Elements() []string {
	ret := make([]string, 0, len(C))
	for k := range C {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

//MaxCount is the largest atom count or multiplier a formula can give.
//Larger digit runs, sums and products saturate to it.
const MaxCount = math.MaxInt32

func satAdd(a, b int) int {
	if a > MaxCount-b {
		return MaxCount
	}
	return a + b
}

func satMul(a, b int) int {
	if a != 0 && b > MaxCount/a {
		return MaxCount
	}
	return a * b
}

//Add sums the counts of other into the receiver.
func (C Composition) Add(other Composition) {
	for k, v := range other {
		C[k] = satAdd(C[k], v)
	}
}

//Scale multiplies all counts in the receiver by factor, which must not be negative.
func (C Composition) Scale(factor int) {
	for k := range C {
		C[k] = satMul(C[k], factor)
	}
}

//Equal returns true if both compositions have the same elements with the same counts.
func (C Composition) Equal(other Composition) bool {
	if len(C) != len(other) {
		return false
	}
	for k, v := range C {
		if o, ok := other[k]; !ok || o != v {
			return false
		}
	}
	return true
}

//String returns the composition as a formula in Hill order: C first, H second
//(only if there is carbon), everything else alphabetically.
func (C Composition) String() string {
	els := C.Elements()
	if _, ok := C["C"]; ok {
		rest := make([]string, 0, len(els))
		first := []string{"C"}
		if _, ok := C["H"]; ok {
			first = append(first, "H")
		}
		for _, e := range els {
			if e != "C" && e != "H" {
				rest = append(rest, e)
			}
		}
		els = append(first, rest...)
	}
	var b strings.Builder
	for _, e := range els {
		b.WriteString(e)
		if C[e] != 1 {
			fmt.Fprintf(&b, "%d", C[e])
		}
	}
	return b.String()
}

const subscriptZero = '₀'

//Normalize replaces the Unicode subscript digits in formula
//with ASCII digits, and removes all white space.
func Normalize(formula string) string {
	var b strings.Builder
	b.Grow(len(formula))
	for _, r := range formula {
		switch {
		case r >= subscriptZero && r <= subscriptZero+9:
			b.WriteRune('0' + (r - subscriptZero))
		case unicode.IsSpace(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

//Subscript returns formula with its ASCII digits as Unicode subscripts.
//It is meant for display only.
func Subscript(formula string) string {
	var b strings.Builder
	for _, r := range formula {
		if r >= '0' && r <= '9' {
			b.WriteRune(subscriptZero + (r - '0'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var phaseTags = []string{"aq", "s", "l", "g"}

//SplitPhase normalizes formula and strips a trailing phase tag, (s), (l), (g) or (aq),
//returning the formula and the tag without parentheses (empty if none was present).
func SplitPhase(formula string) (string, string) {
	f := Normalize(formula)
	for _, p := range phaseTags {
		suffix := "(" + p + ")"
		if len(f) > len(suffix) && strings.HasSuffix(f, suffix) {
			return f[:len(f)-len(suffix)], p
		}
	}
	return f, ""
}

//ParseFormula returns the number of atoms of each element in formula.
//Groups in parentheses, followed by an optional multiplier, are allowed, and can be nested.
//Unicode subscripts are accepted. The function never fails: characters it can't classify
//are skipped and an unmatched ')' is ignored, so malformed input gives a partial composition.
//Unknown symbols are still counted.
func ParseFormula(formula string) Composition {
	f := []rune(Normalize(formula))
	stack := []Composition{{}}
	i := 0
	for i < len(f) {
		ch := f[i]
		switch {
		case ch == '(':
			stack = append(stack, Composition{})
			i++
		case ch == ')':
			i++
			mult, next := readCount(f, i)
			i = next
			if len(stack) == 1 {
				continue //nothing to close
			}
			group := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group.Scale(mult)
			stack[len(stack)-1].Add(group)
		case ch >= 'A' && ch <= 'Z':
			start := i
			i++
			for i < len(f) && f[i] >= 'a' && f[i] <= 'z' {
				i++
			}
			el := string(f[start:i])
			n, next := readCount(f, i)
			i = next
			stack[len(stack)-1][el] = satAdd(stack[len(stack)-1][el], n)
		default:
			i++
		}
	}
	//unclosed groups count once.
	for len(stack) > 1 {
		group := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack[len(stack)-1].Add(group)
	}
	return stack[0]
}

//readCount reads the run of digits starting at i, returning its value
//(1 if there are no digits) and the index after the run. Values above
//MaxCount are saturated.
func readCount(f []rune, i int) (int, int) {
	var n int64
	digits := false
	for i < len(f) && f[i] >= '0' && f[i] <= '9' {
		if n <= MaxCount {
			n = n*10 + int64(f[i]-'0')
		}
		digits = true
		i++
	}
	if !digits {
		return 1, i
	}
	if n > MaxCount {
		n = MaxCount
	}
	return int(n), i
}
