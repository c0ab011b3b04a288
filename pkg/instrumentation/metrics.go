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
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(COMPARISONS_COUNT, FIXTURE_MISMATCH_COUNT, NS_PER_OP, LAST_RUN_TIMESTAMP)
}

// Registry returns the registry holding all sigbench metrics.
func Registry() *prometheus.Registry {
	return registry
}

// ResultStats is the per fixture and comparator summary recorded as gauges.
type ResultStats struct {
	Fixture     string
	Comparator  string
	Comparisons uint64
	Min         float64
	Max         float64
	Mean        float64
	P95         float64
	StdDev      float64
}

func RecordResult(stats ResultStats) {
	COMPARISONS_COUNT.WithLabelValues(stats.Comparator).Add(float64(stats.Comparisons))

	NS_PER_OP.WithLabelValues(stats.Fixture, stats.Comparator, "min").Set(stats.Min)
	NS_PER_OP.WithLabelValues(stats.Fixture, stats.Comparator, "max").Set(stats.Max)
	NS_PER_OP.WithLabelValues(stats.Fixture, stats.Comparator, "mean").Set(stats.Mean)
	NS_PER_OP.WithLabelValues(stats.Fixture, stats.Comparator, "p95").Set(stats.P95)
	NS_PER_OP.WithLabelValues(stats.Fixture, stats.Comparator, "stddev").Set(stats.StdDev)
}

func RecordMismatch() {
	FIXTURE_MISMATCH_COUNT.Inc()
}

func RecordRunFinished(at time.Time) {
	LAST_RUN_TIMESTAMP.Set(float64(at.Unix()))
}

// WriteTextfile writes all metrics in the text exposition format, for the
// node_exporter textfile collector.
func WriteTextfile(path string) error {
	err := prometheus.WriteToTextfile(path, registry)
	if err != nil {
		log.Errorf("WriteTextfile: failed to write metrics to %v, err=%v", path, err)
		return err
	}

	log.Infof("WriteTextfile: metrics written to %v", path)
	return nil
}

// Listen binds addr for the metrics server so a bad address fails before
// any work starts.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Errorf("Listen: failed to bind metrics address %v, err=%v", addr, err)
		return nil, err
	}

	return ln, nil
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	ln, err := Listen(addr)
	if err != nil {
		return err
	}

	return ServeListener(ctx, ln)
}

// ServeListener exposes /metrics on ln until ctx is done. ln is closed on
// return.
func ServeListener(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infof("ServeListener: prometheus metrics available on %v/metrics", ln.Addr())
	err := server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		log.Errorf("ServeListener: metrics server on %v failed, err=%v", ln.Addr(), err)
	}
	return err
}
