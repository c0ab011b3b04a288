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
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

var basicTypes = []string{"y", "b", "n", "q", "i", "u", "x", "t", "d", "s", "o", "g", "v", "h"}

const maxGeneratedDepth = 3

// Generate builds n pseudo-random signature pairs. The same seed always
// yields the same pairs. About half of the pairs carry an extra wrapping
// layer on one side; the rest are identical or differ by one trailing type
// code.
// Generated fixtures have no expectation. n <= 0 yields no fixtures.
func Generate(n int, seed int64) []Fixture {
	if n <= 0 {
		return []Fixture{}
	}

	faker := gofakeit.New(seed)
	fixtures := make([]Fixture, 0, n)

	for i := 0; i < n; i++ {
		sig := generateSignature(faker, faker.Number(1, 6), 0)
		other := sig

		switch faker.Number(0, 3) {
		case 0:
			other = "(" + sig + ")"
		case 1:
			sig = "(" + sig + ")"
		case 2:
			other = sig + faker.RandomString(basicTypes)
		}

		fixtures = append(fixtures, New(fmt.Sprintf("gen_%04d", i), sig, other))
	}

	return fixtures
}

func generateSignature(faker *gofakeit.Faker, length int, depth int) string {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		sb.WriteString(generateType(faker, depth))
	}

	return sb.String()
}

func generateType(faker *gofakeit.Faker, depth int) string {
	if depth >= maxGeneratedDepth {
		return faker.RandomString(basicTypes)
	}

	switch faker.Number(0, 9) {
	case 0:
		return "a" + generateType(faker, depth+1)
	case 1:
		return "(" + generateSignature(faker, faker.Number(1, 4), depth+1) + ")"
	case 2:
		return "a{" + faker.RandomString(basicTypes) + generateType(faker, depth+1) + "}"
	default:
		return faker.RandomString(basicTypes)
	}
}
