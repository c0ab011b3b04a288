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

package fixtures

import (
	"fmt"

	"github.com/siglens/sigbench/pkg/signature"
	"github.com/siglens/sigbench/pkg/utils"
	"github.com/valyala/fastrand"
)

// Fixture is a named signature pair. Expect is set when the fixture declares
// whether the pair must compare equal.
type Fixture struct {
	Name   string             `json:"name" yaml:"name"`
	Pair   signature.Pair     `json:"pair" yaml:"pair"`
	Expect utils.Option[bool] `json:"expect" yaml:"expect"`
}

func New(name, a, b string) Fixture {
	return Fixture{Name: name, Pair: signature.NewPair(a, b)}
}

func NewExpected(name, a, b string, expect bool) Fixture {
	f := New(name, a, b)
	f.Expect.Set(expect)

	return f
}

func (f Fixture) String() string {
	expect, ok := f.Expect.Get()
	if !ok {
		return fmt.Sprintf("%s %v", f.Name, f.Pair)
	}

	return fmt.Sprintf("%s %v expect=%v", f.Name, f.Pair, expect)
}

// Check compares the pair both ways round and returns an error when the two
// outcomes differ or the outcome contradicts the declared expectation.
func (f Fixture) Check() (bool, error) {
	outcome := f.Pair.Equal()
	if swapped := f.Pair.Swap().Equal(); swapped != outcome {
		return outcome, utils.NewErrorWithCode(utils.MISMATCH_ERR,
			fmt.Errorf("fixture %v: %v compared %v but %v swapped", f.Name, f.Pair, outcome, swapped))
	}

	expect, ok := f.Expect.Get()
	if ok && expect != outcome {
		return outcome, utils.NewErrorWithCode(utils.MISMATCH_ERR,
			fmt.Errorf("fixture %v: %v compared %v, expected %v", f.Name, f.Pair, outcome, expect))
	}

	return outcome, nil
}

const longSig = "soy(ba{v})soy(ba{v})bbba{v}"

// Default returns the benchmark table: a short, medium and long pair that
// compare equal and a long pair that differs only in its last character.
func Default() []Fixture {
	return []Fixture{
		NewExpected("short", "ii", "(ii)", true),
		NewExpected("medium", "siia{vo}(ss)(o)", "(siia{vo}(ss)(o))", true),
		NewExpected("long", longSig, longSig, true),
		NewExpected("long_neq", longSig, longSig+"a", false),
	}
}

// Properties returns pairs covering the edge cases of the comparison.
func Properties() []Fixture {
	return []Fixture{
		NewExpected("single_layer", "ii", "(ii)", true),
		NewExpected("single_layer_swapped", "(ii)", "ii", true),
		NewExpected("double_layer", "((o))", "(o)", false),
		NewExpected("content_mismatch", "f", "s", false),
		NewExpected("both_wrapped_mismatch", "(f)", "(s)", false),
		NewExpected("both_wrapped_equal", "(o)", "(o)", true),
		NewExpected("reversed_parens", ")(", ")(", true),
		NewExpected("malformed", ")))(((", "()()()", false),
		NewExpected("nested_wrap", "so(ii)", "(so(ii))", true),
		NewExpected("empty", "", "", true),
		NewExpected("empty_wrapped", "", "()", true),
		NewExpected("unbalanced_wrap", "(i)(i)", "i)(i", false),
		NewExpected("dict", "a{sv}", "(a{sv})", true),
		NewExpected("brace_not_paren", "ii", "{ii}", false),
		NewExpected("case_sensitive", "II", "(ii)", false),
	}
}

// Shuffle reorders fixtures in place.
func Shuffle(fixtures []Fixture) {
	for i := len(fixtures) - 1; i > 0; i-- {
		j := int(fastrand.Uint32n(uint32(i + 1)))
		fixtures[i], fixtures[j] = fixtures[j], fixtures[i]
	}
}
