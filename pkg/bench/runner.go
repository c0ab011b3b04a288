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
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/siglens/sigbench/pkg/config/common"
	"github.com/siglens/sigbench/pkg/fixtures"
	"github.com/siglens/sigbench/pkg/instrumentation"
	"github.com/siglens/sigbench/pkg/signature"
	"github.com/siglens/sigbench/pkg/systeminfo"
	"github.com/siglens/sigbench/pkg/utils"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Workers check for cancellation once per chunk of comparisons.
const cancelCheckInterval = 1 << 16

// sink keeps comparison results observable so the timed loops are not
// optimized away.
var sink atomic.Uint64

type Result struct {
	Fixture    string         `json:"fixture"`
	Pair       signature.Pair `json:"pair"`
	Comparator string         `json:"comparator"`
	Outcome    bool           `json:"outcome"`
	Iterations uint64         `json:"iterations"`
	Samples    []float64      `json:"samples_ns_per_op"`
	Min        float64        `json:"min_ns_per_op"`
	Max        float64        `json:"max_ns_per_op"`
	Mean       float64        `json:"mean_ns_per_op"`
	P95        float64        `json:"p95_ns_per_op"`
	StdDev     float64        `json:"stddev_ns_per_op"`
}

type Runner struct {
	config      common.Configuration
	collectHost func() systeminfo.SystemInfo
}

func NewRunner(config common.Configuration) *Runner {
	return &Runner{
		config:      config,
		collectHost: systeminfo.Collect,
	}
}

// Verify checks every fixture that declares an expectation against
// signature.Equal. All mismatches are collected before returning.
func (r *Runner) Verify(fixtureList []fixtures.Fixture) error {
	be := utils.NewBatchError()
	for _, f := range fixtureList {
		if _, err := f.Check(); err != nil {
			instrumentation.RecordMismatch()
			be.AddError(f.Name, err)
		}
	}

	if be.HasErrors() {
		be.LogAllErrors()
		return fmt.Errorf("Verify: %d fixture(s) failed: %w", be.Count(), be.Err())
	}

	log.Debugf("Verify: %d fixtures passed", len(fixtureList))
	return nil
}

// Run verifies the fixtures, then times every comparator against every
// fixture.
func (r *Runner) Run(ctx context.Context, fixtureList []fixtures.Fixture, comparators []Comparator) (*Report, error) {
	if len(fixtureList) == 0 {
		return nil, utils.TeeErrorf("Run: no fixtures to run")
	}
	if len(comparators) == 0 {
		return nil, utils.TeeErrorf("Run: no comparators to run")
	}
	if r.config.Iterations == 0 || r.config.Samples <= 0 || r.config.Workers <= 0 {
		return nil, utils.TeeErrorf("Run: invalid config iterations=%v samples=%v workers=%v",
			r.config.Iterations, r.config.Samples, r.config.Workers)
	}

	if err := r.Verify(fixtureList); err != nil {
		return nil, err
	}

	ordered := append([]fixtures.Fixture(nil), fixtureList...)
	if r.config.ShuffleConverted {
		fixtures.Shuffle(ordered)
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Host:      r.collectHost(),
		Config:    r.config,
		Results:   make([]Result, 0, len(ordered)*len(comparators)),
	}

	log.Infof("Run: id=%v fixtures=%v comparators=%v iterations=%v samples=%v workers=%v",
		report.RunID, len(ordered), len(comparators), r.config.Iterations, r.config.Samples, r.config.Workers)

	for _, f := range ordered {
		for _, c := range comparators {
			result, err := r.measure(ctx, f, c)
			if err != nil {
				return nil, fmt.Errorf("Run: fixture=%v comparator=%v: %w", f.Name, c.Name, err)
			}
			report.Results = append(report.Results, result)

			instrumentation.RecordResult(instrumentation.ResultStats{
				Fixture:     result.Fixture,
				Comparator:  result.Comparator,
				Comparisons: result.Iterations * uint64(len(result.Samples)),
				Min:         result.Min,
				Max:         result.Max,
				Mean:        result.Mean,
				P95:         result.P95,
				StdDev:      result.StdDev,
			})
		}
	}

	report.Duration = time.Since(report.StartedAt)
	instrumentation.RecordRunFinished(time.Now())

	return report, nil
}

func (r *Runner) measure(ctx context.Context, f fixtures.Fixture, c Comparator) (Result, error) {
	a, b := f.Pair.A, f.Pair.B
	result := Result{
		Fixture:    f.Name,
		Pair:       f.Pair,
		Comparator: c.Name,
		Outcome:    c.Fn(a, b),
		Iterations: r.config.Iterations,
		Samples:    make([]float64, 0, r.config.Samples),
	}

	var warm uint64
	for i := uint64(0); i < r.config.WarmupIterations; i++ {
		if c.Fn(a, b) {
			warm++
		}
	}
	sink.Add(warm)

	for s := 0; s < r.config.Samples; s++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		elapsed, err := r.timeSample(ctx, c.Fn, a, b)
		if err != nil {
			return result, err
		}
		result.Samples = append(result.Samples, float64(elapsed.Nanoseconds())/float64(r.config.Iterations))
	}

	result.Min, _ = stats.Min(result.Samples)
	result.Max, _ = stats.Max(result.Samples)
	result.Mean, _ = stats.Mean(result.Samples)
	result.StdDev, _ = stats.StandardDeviation(result.Samples)
	p95, err := stats.Percentile(result.Samples, 95)
	if err != nil {
		// too few samples for a percentile
		p95 = result.Max
	}
	result.P95 = p95

	log.Debugf("measure: fixture=%v comparator=%v mean=%.2fns/op", f.Name, c.Name, result.Mean)
	return result, nil
}

// timeSample runs Iterations comparisons split across Workers goroutines and
// returns the wall-clock time until all of them finished.
func (r *Runner) timeSample(ctx context.Context, fn func(a, b string) bool, a, b string) (time.Duration, error) {
	workers := uint64(r.config.Workers)
	perWorker := r.config.Iterations / workers
	remainder := r.config.Iterations % workers

	g, gctx := errgroup.WithContext(ctx)
	start := time.Now()
	for w := uint64(0); w < workers; w++ {
		n := perWorker
		if w == 0 {
			n += remainder
		}
		g.Go(func() error {
			return runComparisons(gctx, fn, a, b, n)
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)

	return elapsed, err
}

func runComparisons(ctx context.Context, fn func(a, b string) bool, a, b string, n uint64) error {
	var count uint64
	for done := uint64(0); done < n; {
		chunk := n - done
		if chunk > cancelCheckInterval {
			chunk = cancelCheckInterval
		}
		for i := uint64(0); i < chunk; i++ {
			if fn(a, b) {
				count++
			}
		}
		done += chunk

		if err := ctx.Err(); err != nil {
			return err
		}
	}
	sink.Add(count)

	return nil
}
