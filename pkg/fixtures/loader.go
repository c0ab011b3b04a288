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
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/siglens/sigbench/pkg/signature"
	"github.com/siglens/sigbench/pkg/utils"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fileFixture is one entry of a fixtures file:
//
//	- name: short
//	  a: ii
//	  b: (ii)
//	  expect: true
type fileFixture struct {
	Name   string             `json:"name" yaml:"name"`
	A      string             `json:"a" yaml:"a"`
	B      string             `json:"b" yaml:"b"`
	Expect utils.Option[bool] `json:"expect" yaml:"expect"`
}

// LoadFile reads fixtures from a .yaml, .yml or .json file.
func LoadFile(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorf("LoadFile: cannot read fixtures file=%v, err=%v", path, err)
		return nil, utils.NewErrorWithCode(utils.FIXTURE_ERR, err)
	}

	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	case ".json":
		format = "json"
	default:
		return nil, utils.NewErrorWithCode(utils.FIXTURE_ERR,
			fmt.Errorf("LoadFile: unsupported fixtures file extension %q", filepath.Ext(path)))
	}

	fixtures, err := Parse(data, format)
	if err != nil {
		return nil, utils.WrapErrorf(err, "LoadFile: file=%v, err=%v", path, err)
	}

	log.Debugf("LoadFile: loaded %d fixtures from %v", len(fixtures), path)
	return fixtures, nil
}

// Parse decodes a fixtures document in the given format ("yaml" or "json").
func Parse(data []byte, format string) ([]Fixture, error) {
	var records []fileFixture
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &records)
	case "json":
		err = json.Unmarshal(data, &records)
	default:
		return nil, utils.NewErrorWithCode(utils.FIXTURE_ERR, fmt.Errorf("Parse: unknown format %q", format))
	}
	if err != nil {
		return nil, utils.NewErrorWithCode(utils.FIXTURE_ERR, fmt.Errorf("Parse: failed to decode %v: %v", format, err))
	}

	if len(records) == 0 {
		return nil, utils.NewErrorWithCode(utils.FIXTURE_ERR, fmt.Errorf("Parse: no fixtures found"))
	}

	seen := make(map[string]struct{}, len(records))
	fixtures := make([]Fixture, 0, len(records))
	for i, r := range records {
		if r.Name == "" {
			return nil, utils.NewErrorWithCode(utils.FIXTURE_ERR, fmt.Errorf("Parse: fixture %d has no name", i))
		}
		if _, ok := seen[r.Name]; ok {
			return nil, utils.NewErrorWithCode(utils.FIXTURE_ERR, fmt.Errorf("Parse: duplicate fixture name %q", r.Name))
		}
		seen[r.Name] = struct{}{}

		fixtures = append(fixtures, Fixture{
			Name:   r.Name,
			Pair:   signature.NewPair(r.A, r.B),
			Expect: r.Expect,
		})
	}

	return fixtures, nil
}
