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
	"github.com/prometheus/client_golang/prometheus"
)

var NS_PER_OP = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "sigbench",
	Name:      "ns_per_op",
	Help:      "Nanoseconds per comparison for a fixture and comparator. stat is one of min, max, mean, p95, stddev.",
}, []string{"fixture", "comparator", "stat"})

var LAST_RUN_TIMESTAMP = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "sigbench",
	Name:      "last_run_timestamp_seconds",
	Help:      "Unix time at which the last benchmark run finished.",
})
