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

package bench

import (
	"github.com/siglens/sigbench/pkg/signature"
)

// Comparator is one way of comparing a signature pair that the runner times.
type Comparator struct {
	Name string
	Fn   func(a, b string) bool
}

// Baseline is plain string equality, the behaviour before parentheses were
// treated as insignificant.
var Baseline = Comparator{
	Name: "pre-PR",
	Fn: func(a, b string) bool {
		return a == b
	},
}

var PartialEq = Comparator{
	Name: "partialeq",
	Fn:   signature.Equal,
}

func DefaultComparators() []Comparator {
	return []Comparator{Baseline, PartialEq}
}

// ComparatorByName looks up one of the default comparators.
func ComparatorByName(name string) (Comparator, bool) {
	for _, c := range DefaultComparators() {
		if c.Name == name {
			return c, true
		}
	}

	return Comparator{}, false
}
