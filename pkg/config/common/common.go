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

package common

type LogConfig struct {
	LogPrefix             string `yaml:"logPrefix" json:"log_prefix"`                            // Prefix of log file. Can be a directory. if empty will log to stderr
	LogFileRotationSizeMB int    `yaml:"logFileRotationSizeMB" json:"log_file_rotation_size_mb"` //Max size of log file in megabytes
	CompressLogFile       bool   `yaml:"compressLogFile" json:"compress_log_file"`
}

/*  If you add a new config parameters to the Configuration struct below, make sure to add the default value
assignment in the following functions
1) ExtractConfigData function
2) InitializeDefaultConfig function */

type Configuration struct {
	Iterations        uint64    `yaml:"iterations" json:"iterations"`                 // comparisons per timed sample
	Samples           int       `yaml:"samples" json:"samples"`                       // timed samples per fixture and comparator
	Workers           int       `yaml:"workers" json:"workers"`                       // goroutines sharing the iterations of a sample
	WarmupIterations  uint64    `yaml:"warmupIterations" json:"warmup_iterations"`    // untimed comparisons before the first sample
	FixturesFile      string    `yaml:"fixturesFile" json:"fixtures_file"`            // yaml or json fixtures; built-in table if empty
	Generated         int       `yaml:"generated" json:"generated"`                   // number of generated pairs appended to the fixtures
	Seed              int64     `yaml:"seed" json:"seed"`                             // seed for generated pairs
	Shuffle           string    `yaml:"shuffle" json:"shuffle"`                       // shuffle fixture order before running?
	ShuffleConverted  bool      `yaml:"-" json:"-"`                                   // converted bool value of Shuffle yaml
	ReportFile        string    `yaml:"reportFile" json:"report_file"`                // json report output, skipped if empty
	MetricsTextfile   string    `yaml:"metricsTextfile" json:"metrics_textfile"`      // prometheus textfile output, skipped if empty
	MetricsListenAddr string    `yaml:"metricsListenAddr" json:"metrics_listen_addr"` // serve /metrics on this address while running
	Debug             bool      `yaml:"debug" json:"debug"`                           // debug logging
	Log               LogConfig `yaml:"log" json:"log"`                               // Log related config
}
