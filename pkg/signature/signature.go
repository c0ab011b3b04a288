// Copyright (c) 2021-2024 SigScalr, Inc.
//
// This file is part of SigLens Observability Solution
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package signature compares D-Bus style type signatures where one optional
// layer of wrapping parentheses is insignificant, so "ii" and "(ii)" describe
// the same thing.
package signature

// StripOuterParentheses returns the interior of sig when sig is wrapped in a
// single outer pair of parentheses, e.g. "(ii)" -> "ii". The returned string
// shares memory with sig.
//
// The interior is scanned with a depth counter that never drops below zero;
// the pair only counts as wrapping when the counter ends at zero. If sig is
// not wrapped, ("", false) is returned.
func StripOuterParentheses(sig string) (string, bool) {
	n := len(sig)
	if n < 2 || sig[0] != '(' || sig[n-1] != ')' {
		return "", false
	}

	inner := sig[1 : n-1]
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
	}

	if depth != 0 {
		return "", false
	}

	return inner, true
}

// Equal reports whether a and b are the same signature, ignoring one layer of
// outer parentheses on exactly one side. When both sides are wrapped their
// parentheses are significant and the raw strings are compared.
func Equal(a, b string) bool {
	innerA, strippedA := StripOuterParentheses(a)
	innerB, strippedB := StripOuterParentheses(b)

	switch {
	case strippedA && !strippedB:
		return innerA == b
	case !strippedA && strippedB:
		return a == innerB
	default:
		return a == b
	}
}

// Pair is a pair of signatures to compare.
type Pair struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

func NewPair(a, b string) Pair {
	return Pair{A: a, B: b}
}

func (p Pair) Equal() bool {
	return Equal(p.A, p.B)
}

// Swap returns the pair with both sides exchanged.
func (p Pair) Swap() Pair {
	return Pair{A: p.B, B: p.A}
}

func (p Pair) String() string {
	return "(" + p.A + ", " + p.B + ")"
}
