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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/siglens/sigbench/pkg/config/common"
	"github.com/siglens/sigbench/pkg/systeminfo"
	log "github.com/sirupsen/logrus"
	"github.com/valyala/bytebufferpool"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Report struct {
	RunID     string                `json:"run_id"`
	StartedAt time.Time             `json:"started_at"`
	Duration  time.Duration         `json:"duration_ns"`
	Host      systeminfo.SystemInfo `json:"host"`
	Config    common.Configuration  `json:"config"`
	Results   []Result              `json:"results"`
}

func (r *Report) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("WriteJSON: failed to marshal report: %v", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

// WriteJSONFile writes the report to path, replacing any existing file.
func (r *Report) WriteJSONFile(path string) error {
	file, err := os.OpenFile(path, os.O_TRUNC|os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		log.Errorf("WriteJSONFile: failed to open %v, err=%v", path, err)
		return err
	}
	defer file.Close()

	err = r.WriteJSON(file)
	if err != nil {
		log.Errorf("WriteJSONFile: failed to write %v, err=%v", path, err)
		return err
	}

	log.Infof("WriteJSONFile: report %v written to %v", r.RunID, path)
	return nil
}

// WriteText writes an aligned table with one row per fixture and comparator.
func (r *Report) WriteText(w io.Writer) error {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	fmt.Fprintf(bb, "run %v on %v (%v, %v vCPU, %v RAM)\n", r.RunID, r.Host.Hostname, r.Host.Platform,
		r.Host.VCPU, humanize.IBytes(r.Host.Memory.Total))
	fmt.Fprintf(bb, "%v comparisons per sample, %v samples, %v workers, took %v\n\n",
		humanize.Comma(int64(r.Config.Iterations)), r.Config.Samples, r.Config.Workers, r.Duration.Round(time.Millisecond))

	nameWidth := len("fixture")
	for _, res := range r.Results {
		if len(res.Fixture) > nameWidth {
			nameWidth = len(res.Fixture)
		}
	}

	fmt.Fprintf(bb, "%-*s  %-10s  %-7s  %10s  %10s  %10s  %10s\n", nameWidth, "fixture", "comparator", "equal",
		"min ns/op", "mean ns/op", "p95 ns/op", "max ns/op")
	for _, res := range r.Results {
		fmt.Fprintf(bb, "%-*s  %-10s  %-7v  %10.2f  %10.2f  %10.2f  %10.2f\n", nameWidth, res.Fixture, res.Comparator,
			res.Outcome, res.Min, res.Mean, res.P95, res.Max)
	}

	_, err := w.Write(bb.B)
	return err
}

// LogSummary logs one line per result, then how each comparator's mean
// compares to the baseline for every fixture that ran both.
func (r *Report) LogSummary() {
	log.Infof("-----Benchmark Summary. Run %v completed in %v----", r.RunID, r.Duration)
	for _, res := range r.Results {
		log.Infof("Fixture: %s %v. Comparator: %s. Equal: %v. Min:%.2fns, Max:%.2fns, Avg:%.2fns, P95:%.2fns",
			res.Fixture, res.Pair, res.Comparator, res.Outcome, res.Min, res.Max, res.Mean, res.P95)
	}

	for _, ratio := range r.BaselineRatios() {
		log.Infof("Fixture: %s. %s/%s mean ratio: %.2f", ratio.Fixture, ratio.Comparator, Baseline.Name, ratio.Ratio)
	}
}

// BaselineRatio is a comparator's mean ns/op divided by the baseline's for
// one fixture.
type BaselineRatio struct {
	Fixture    string
	Comparator string
	Ratio      float64
}

// BaselineRatios pairs every non-baseline result with the baseline result of
// the same fixture, in result order. Fixtures without a baseline result or
// with a zero baseline mean are skipped.
func (r *Report) BaselineRatios() []BaselineRatio {
	ratios := make([]BaselineRatio, 0)
	for _, res := range r.Results {
		if res.Comparator == Baseline.Name {
			continue
		}
		base, ok := r.Find(res.Fixture, Baseline.Name)
		if !ok || base.Mean == 0 {
			continue
		}
		ratios = append(ratios, BaselineRatio{
			Fixture:    res.Fixture,
			Comparator: res.Comparator,
			Ratio:      res.Mean / base.Mean,
		})
	}

	return ratios
}

// Find returns the result for a fixture and comparator.
func (r *Report) Find(fixture, comparator string) (Result, bool) {
	for _, res := range r.Results {
		if res.Fixture == fixture && res.Comparator == comparator {
			return res, true
		}
	}

	return Result{}, false
}
