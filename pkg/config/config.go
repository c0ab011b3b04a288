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

package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/siglens/sigbench/pkg/config/common"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DEFAULT_ITERATIONS        = 1_000_000
	DEFAULT_SAMPLES           = 10
	DEFAULT_WORKERS           = 1
	DEFAULT_WARMUP_ITERATIONS = 10_000
	DEFAULT_SEED              = 42
	DEFAULT_LOG_ROTATION_MB   = 100
)

var runningConfig common.Configuration

func init() {
	InitializeDefaultConfig()
}

func GetRunningConfig() *common.Configuration {
	return &runningConfig
}

func GetIterations() uint64 {
	return runningConfig.Iterations
}

func GetSamples() int {
	return runningConfig.Samples
}

func GetWorkers() int {
	return runningConfig.Workers
}

func IsShuffleEnabled() bool {
	return runningConfig.ShuffleConverted
}

func SetShuffleEnabled(flag bool) {
	runningConfig.ShuffleConverted = flag
	runningConfig.Shuffle = strconv.FormatBool(flag)
}

func IsDebugMode() bool {
	return runningConfig.Debug
}

func SetDebugMode(flag bool) {
	runningConfig.Debug = flag
}

func GetLogPrefix() string {
	return runningConfig.Log.LogPrefix
}

// MaxWorkers is the upper bound applied to the workers setting.
func MaxWorkers() int {
	return runtime.NumCPU() * 4
}

/*
Use only for testing purpose, DO NOT use externally
*/
func InitializeDefaultConfig() {
	runningConfig = GetTestConfig()
}

func GetTestConfig() common.Configuration {
	// *************************************
	// MAKE SURE the defaults here match ExtractConfigData
	// ************************************
	return common.Configuration{
		Iterations:        DEFAULT_ITERATIONS,
		Samples:           DEFAULT_SAMPLES,
		Workers:           DEFAULT_WORKERS,
		WarmupIterations:  DEFAULT_WARMUP_ITERATIONS,
		FixturesFile:      "",
		Generated:         0,
		Seed:              DEFAULT_SEED,
		Shuffle:           "true",
		ShuffleConverted:  true,
		ReportFile:        "",
		MetricsTextfile:   "",
		MetricsListenAddr: "",
		Debug:             false,
		Log: common.LogConfig{
			LogPrefix:             "",
			LogFileRotationSizeMB: DEFAULT_LOG_ROTATION_MB,
			CompressLogFile:       false,
		},
	}
}

// InitConfigurationData reads the config file, if any, and makes it the
// running config. An empty path keeps the defaults.
func InitConfigurationData(configFilePath string) error {
	if configFilePath == "" {
		InitializeDefaultConfig()
		return nil
	}

	config, err := ReadConfigFile(configFilePath)
	if err != nil {
		return err
	}
	runningConfig = config
	return nil
}

func ReadConfigFile(fileName string) (common.Configuration, error) {
	yamlData, err := os.ReadFile(fileName)
	if err != nil {
		log.Errorf("ReadConfigFile: Cannot read input fileName = %v, err=%v", fileName, err)
		return common.Configuration{}, err
	}
	return ExtractConfigData(yamlData)
}

func ExtractConfigData(yamlData []byte) (common.Configuration, error) {
	var config common.Configuration
	err := yaml.Unmarshal(yamlData, &config)
	if err != nil {
		log.Errorf("ExtractConfigData: Error parsing yaml err=%v", err)
		return config, err
	}

	if config.Iterations == 0 {
		config.Iterations = DEFAULT_ITERATIONS
	}
	if config.Samples <= 0 {
		config.Samples = DEFAULT_SAMPLES
	}
	if config.Workers <= 0 {
		config.Workers = DEFAULT_WORKERS
	}
	if config.Workers > MaxWorkers() {
		log.Warnf("ExtractConfigData: workers=%v is above the limit, using %v", config.Workers, MaxWorkers())
		config.Workers = MaxWorkers()
	}
	if config.WarmupIterations == 0 {
		config.WarmupIterations = DEFAULT_WARMUP_ITERATIONS
	}
	if config.Generated < 0 {
		return config, fmt.Errorf("ExtractConfigData: generated must not be negative, got %v", config.Generated)
	}
	if config.Seed == 0 {
		config.Seed = DEFAULT_SEED
	}

	if len(config.Shuffle) <= 0 {
		config.Shuffle = "true"
	}
	shuffle, err := strconv.ParseBool(config.Shuffle)
	if err != nil {
		log.Errorf("ExtractConfigData: failed to parse shuffle flag. Defaulting to true. Error: %v", err)
		shuffle = true
		config.Shuffle = "true"
	}
	config.ShuffleConverted = shuffle

	if config.Log.LogFileRotationSizeMB <= 0 {
		config.Log.LogFileRotationSizeMB = DEFAULT_LOG_ROTATION_MB
	}

	return config, nil
}
