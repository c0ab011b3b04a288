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

package cli

import (
	"os"
	"path/filepath"

	"github.com/siglens/sigbench/pkg/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// initLogger sends logs to stderr so command output on stdout stays clean,
// or to a rotated file under log.logPrefix when one is configured.
func initLogger() error {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)

	baseLogDir := config.GetLogPrefix()
	if baseLogDir == "" {
		log.SetOutput(os.Stderr)
	} else {
		err := os.MkdirAll(filepath.Dir(baseLogDir+"sigbench.log"), 0764)
		if err != nil {
			log.Errorf("initLogger: failed to make log directory at=%v, err=%v", baseLogDir, err)
			return err
		}
		logConfig := config.GetRunningConfig().Log
		log.SetOutput(&lumberjack.Logger{
			Filename:   baseLogDir + "sigbench.log",
			MaxSize:    logConfig.LogFileRotationSizeMB,
			MaxBackups: 30,
			MaxAge:     1, //days
			Compress:   logConfig.CompressLogFile,
		})
	}

	if config.IsDebugMode() {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	return nil
}
