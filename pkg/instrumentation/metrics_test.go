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

package instrumentation

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_RecordResult(t *testing.T) {
	before := testutil.ToFloat64(COMPARISONS_COUNT.WithLabelValues("partialeq"))

	RecordResult(ResultStats{
		Fixture:     "short",
		Comparator:  "partialeq",
		Comparisons: 1000,
		Min:         1.5,
		Max:         3,
		Mean:        2,
		P95:         2.5,
		StdDev:      0.25,
	})

	assert.Equal(t, before+1000, testutil.ToFloat64(COMPARISONS_COUNT.WithLabelValues("partialeq")))
	assert.Equal(t, 1.5, testutil.ToFloat64(NS_PER_OP.WithLabelValues("short", "partialeq", "min")))
	assert.Equal(t, 2.5, testutil.ToFloat64(NS_PER_OP.WithLabelValues("short", "partialeq", "p95")))
	assert.Equal(t, 0.25, testutil.ToFloat64(NS_PER_OP.WithLabelValues("short", "partialeq", "stddev")))
}

func Test_RecordMismatch(t *testing.T) {
	before := testutil.ToFloat64(FIXTURE_MISMATCH_COUNT)
	RecordMismatch()
	assert.Equal(t, before+1, testutil.ToFloat64(FIXTURE_MISMATCH_COUNT))
}

func Test_WriteTextfile(t *testing.T) {
	RecordResult(ResultStats{Fixture: "long", Comparator: "pre-PR", Comparisons: 1, Mean: 4})
	RecordRunFinished(time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "sigbench.prom")
	assert.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `sigbench_ns_per_op{comparator="pre-PR",fixture="long",stat="mean"} 4`), text)
	assert.Contains(t, text, "sigbench_last_run_timestamp_seconds 1.7e+09")

	assert.Error(t, WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")))
}

func Test_Registry(t *testing.T) {
	RecordMismatch()
	RecordResult(ResultStats{Fixture: "medium", Comparator: "partialeq", Comparisons: 1})
	RecordRunFinished(time.Now())

	families, err := Registry().Gather()
	assert.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"sigbench_comparisons_total",
		"sigbench_fixture_mismatches_total",
		"sigbench_ns_per_op",
		"sigbench_last_run_timestamp_seconds",
	}, names)
}

func Test_Serve_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0")
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func Test_Listen_AddressInUse(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer taken.Close()

	_, err = Listen(taken.Addr().String())
	assert.Error(t, err)

	err = Serve(context.Background(), taken.Addr().String())
	assert.Error(t, err)
}

func Test_ServeListener(t *testing.T) {
	RecordMismatch()

	ln, err := Listen("127.0.0.1:0")
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeListener(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	assert.NoError(t, err)
	if err == nil {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.NoError(t, readErr)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "sigbench_fixture_mismatches_total")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("ServeListener did not return after cancel")
	}
}
