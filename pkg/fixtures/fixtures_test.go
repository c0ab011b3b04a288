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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/siglens/sigbench/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func Test_Default(t *testing.T) {
	fixtures := Default()
	assert.Len(t, fixtures, 4)

	names := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		names = append(names, f.Name)
		_, err := f.Check()
		assert.NoError(t, err, f.String())
	}
	assert.Equal(t, []string{"short", "medium", "long", "long_neq"}, names)

	assert.Equal(t, "short (ii, (ii)) expect=true", fixtures[0].String())
}

func Test_Properties(t *testing.T) {
	for _, f := range Properties() {
		outcome, err := f.Check()
		assert.NoError(t, err, f.String())

		swapped := f
		swapped.Pair = f.Pair.Swap()
		swappedOutcome, err := swapped.Check()
		assert.NoError(t, err, swapped.String())
		assert.Equal(t, outcome, swappedOutcome)
	}
}

func Test_Check_Mismatch(t *testing.T) {
	f := NewExpected("wrong", "((o))", "(o)", true)
	outcome, err := f.Check()
	assert.False(t, outcome)
	assert.Error(t, err)

	var ewc *utils.ErrorWithCode
	assert.True(t, errors.As(err, &ewc))
	assert.Equal(t, utils.MISMATCH_ERR, ewc.Code())

	unchecked := New("free", "((o))", "(o)")
	outcome, err = unchecked.Check()
	assert.False(t, outcome)
	assert.NoError(t, err)
	assert.Equal(t, "free (((o)), (o))", unchecked.String())
}

func Test_LoadFile_YAML(t *testing.T) {
	fixtures, err := LoadFile("testdata/fixtures.yaml")
	assert.NoError(t, err)
	assert.Len(t, fixtures, 3)

	assert.Equal(t, "short", fixtures[0].Name)
	assert.Equal(t, "ii", fixtures[0].Pair.A)
	assert.Equal(t, "(ii)", fixtures[0].Pair.B)
	expect, ok := fixtures[0].Expect.Get()
	assert.True(t, ok)
	assert.True(t, expect)

	expect, ok = fixtures[1].Expect.Get()
	assert.True(t, ok)
	assert.False(t, expect)

	assert.False(t, fixtures[2].Expect.IsSet())

	for _, f := range fixtures {
		_, err := f.Check()
		assert.NoError(t, err)
	}
}

func Test_LoadFile_JSON(t *testing.T) {
	fixtures, err := LoadFile("testdata/fixtures.json")
	assert.NoError(t, err)
	assert.Len(t, fixtures, 3)
	assert.Equal(t, "long_neq", fixtures[1].Name)
	assert.False(t, fixtures[2].Expect.IsSet())
	assert.Equal(t, ")(", fixtures[2].Pair.A)
}

func Test_LoadFile_Mismatch(t *testing.T) {
	fixtures, err := LoadFile("testdata/mismatch.yaml")
	assert.NoError(t, err)
	assert.Len(t, fixtures, 1)

	_, err = fixtures[0].Check()
	assert.Error(t, err)
}

func Test_LoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	cases := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"unknown extension", write("fixtures.toml", "")},
		{"bad yaml", write("bad.yaml", "- name: [")},
		{"bad json", write("bad.json", "[{")},
		{"empty list", write("empty.yaml", "[]")},
		{"no name", write("noname.yaml", "- a: ii\n  b: ii\n")},
		{"duplicate name", write("dup.json", `[{"name": "x", "a": "i", "b": "i"}, {"name": "x", "a": "s", "b": "s"}]`)},
		{"bad expect", write("expect.yaml", "- name: x\n  a: i\n  b: i\n  expect: maybe\n")},
	}

	for _, test := range cases {
		fixtures, err := LoadFile(test.path)
		assert.Error(t, err, test.name)
		assert.Nil(t, fixtures, test.name)

		var ewc *utils.ErrorWithCode
		assert.True(t, errors.As(err, &ewc), test.name)
	}
}

func Test_Generate(t *testing.T) {
	first := Generate(50, 42)
	second := Generate(50, 42)
	assert.Len(t, first, 50)
	assert.Equal(t, first, second)

	other := Generate(50, 43)
	assert.NotEqual(t, first, other)

	wrapped := 0
	for _, f := range first {
		assert.NotEmpty(t, f.Pair.A)
		assert.NotEmpty(t, f.Pair.B)
		assert.False(t, f.Expect.IsSet())
		if len(f.Pair.A) != len(f.Pair.B) && (f.Pair.A == "("+f.Pair.B+")" || f.Pair.B == "("+f.Pair.A+")") {
			wrapped++
		}
	}
	assert.Greater(t, wrapped, 0)

	assert.Empty(t, Generate(0, 1))
	assert.NotPanics(t, func() {
		assert.Empty(t, Generate(-1, 1))
	})
}

func Test_Shuffle(t *testing.T) {
	fixtures := append(Default(), Properties()...)
	shuffled := append([]Fixture(nil), fixtures...)
	Shuffle(shuffled)

	assert.ElementsMatch(t, fixtures, shuffled)

	Shuffle(nil)
	single := Default()[:1]
	Shuffle(single)
	assert.Equal(t, "short", single[0].Name)
}
